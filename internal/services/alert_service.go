package services

import (
	"context"
	"fmt"

	"github.com/deb007/travelbuddy/internal/models"
)

type alertService struct {
	budgets BudgetService
	cards   ForexCardService
}

// NewAlertService creates the alert aggregator over budget and forex state.
func NewAlertService(budgets BudgetService, cards ForexCardService) AlertService {
	return &alertService{budgets: budgets, cards: cards}
}

// Collect produces one alert per budget past a threshold (the higher one wins)
// and one per forex card below the low-balance line.
func (s *alertService) Collect(ctx context.Context) ([]models.Alert, error) {
	alerts := []models.Alert{}

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range budgets {
		switch {
		case b.AtNinety:
			alerts = append(alerts, models.Alert{
				Type:     "budget",
				Currency: b.Currency,
				Level:    "danger",
				Message:  fmt.Sprintf("%s budget at %s%% (>=90%%)", b.Currency, b.PercentUsed),
			})
		case b.AtEighty:
			alerts = append(alerts, models.Alert{
				Type:     "budget",
				Currency: b.Currency,
				Level:    "warn",
				Message:  fmt.Sprintf("%s budget at %s%% (>=80%%)", b.Currency, b.PercentUsed),
			})
		}
	}

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if c.LowBalance {
			alerts = append(alerts, models.Alert{
				Type:     "forex",
				Currency: c.Currency,
				Level:    "warn",
				Message:  fmt.Sprintf("%s forex card at %s%% remaining (<20%%)", c.Currency, c.PercentRemaining),
			})
		}
	}

	return alerts, nil
}
