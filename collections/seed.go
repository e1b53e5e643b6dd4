package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"budgettool/budget"
	"budgettool/store"
)

// SeedActor is recorded as creator of the demo budget.
const SeedActor = "seed"

// DemoDocument is a one-month fauna monitoring campaign: a coordinator for
// thirty days, a biologist for fifteen, 33% of surcharges and a 10% discount.
// Its final total is R$ 12.807,90.
func DemoDocument() budget.Document {
	return budget.NormalizeDocument(map[string]any{
		"metadata": map[string]any{
			"name":            "Monitoramento de Fauna - Campanha 1",
			"client":          "Mineração Serra Azul",
			"date":            "2025-03-10",
			"discountPercent": 10,
		},
		"parameters": map[string]any{
			"tax":                   0.07,
			"profit":                0.05,
			"workingCapitalFund":    0.05,
			"payrollCharges":        0.10,
			"fiscalExpenses":        0.03,
			"acquisitionCommission": 0.03,
		},
		"coordination": []any{
			map[string]any{"role": "Coordenador de campo", "professionalLevel": "Sênior", "monthlyRate": 5000, "quantity": 1, "days": 30},
		},
		"professionals": []any{
			map[string]any{"role": "Biólogo", "monthlyFee": 10000, "people": 1, "days": 15},
		},
	})
}

// Seed inserts the demo budget. It is safe to call on every startup because
// it returns early if any budget already exists.
func Seed(app *pocketbase.PocketBase) error {
	gateway := store.NewPocketBase(app)

	existing, err := gateway.List()
	if err != nil {
		return fmt.Errorf("seed: could not query budgets: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: budgets collection is empty, inserting demo budget")

	id, err := gateway.Create(DemoDocument(), SeedActor)
	if err != nil {
		return fmt.Errorf("seed: create demo budget: %w", err)
	}

	log.Printf("seed: demo budget %s created\n", id)
	return nil
}
