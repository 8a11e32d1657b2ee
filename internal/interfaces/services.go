// Package interfaces defines service contracts for Greenwash
package interfaces

import (
	"github.com/bobmcallan/greenwash/internal/models"
)

// CaseService browses the loaded case table
type CaseService interface {
	// Dataset returns the immutable case table
	Dataset() *models.Dataset

	// View validates the selection and returns the matching cases in dataset order
	View(sel models.Selection) models.View

	// List is View with the records sorted
	List(sel models.Selection, order models.SortOrder) models.View

	// Get returns one case prepared for display, or models.ErrCaseNotFound
	Get(id string) (*models.CaseDetail, error)
}

// AnalyticsService aggregates filtered views
type AnalyticsService interface {
	// Overview computes every dashboard aggregate for the view
	Overview(view models.View) models.Overview
}

// ChartService renders dashboard charts
type ChartService interface {
	// Render draws the named chart from an overview. Empty data yields a placeholder image.
	Render(name models.ChartName, format models.ChartFormat, overview models.Overview) ([]byte, error)
}
