package postgres_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/postgres"
)

func fullInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNo:      "KITS-IT-007",
		ClientName:     "Acme Labs",
		ClientEmail:    "billing@acme.test",
		ClientPhone:    "+91 98450 00000",
		ClientAddress:  "12 MG Road, Bengaluru",
		Description:    "AR/VR lab setup",
		InvoiceDate:    "2024-05-01",
		DueDate:        "2024-05-08",
		Departments:    []string{entity.Department3DPrinting, entity.DepartmentITARVR, entity.DepartmentRobotics},
		DepartmentCode: entity.DepartmentCode3DPrinting,
		Items: []entity.InvoiceItem{
			{ServiceName: "Workshop", Quantity: 2, Amount: decimal.RequireFromString("1500.50"), Total: decimal.RequireFromString("3001.00")},
			{ServiceName: "Kit", Quantity: 1, Amount: decimal.RequireFromString("0.09"), Total: decimal.RequireFromString("0.09")},
		},
		Subtotal:   decimal.RequireFromString("3001.09"),
		GSTRate:    18,
		GSTAmount:  decimal.RequireFromString("540.09"),
		FinalTotal: decimal.RequireFromString("3541.18"),
		CreatedAt:  time.Date(2024, 5, 1, 10, 30, 15, 123000000, time.UTC),
	}
}

func TestDocumento_ConservaCamposYMontos(t *testing.T) {
	in := fullInvoice()

	out, err := postgres.RoundTripDoc("6f1c2d3e-0000-4000-8000-000000000001", in)
	require.NoError(t, err)

	assert.Equal(t, "6f1c2d3e-0000-4000-8000-000000000001", out.ID)
	assert.Equal(t, in.InvoiceNo, out.InvoiceNo)
	assert.Equal(t, in.ClientName, out.ClientName)
	assert.Equal(t, in.ClientEmail, out.ClientEmail)
	assert.Equal(t, in.ClientPhone, out.ClientPhone)
	assert.Equal(t, in.ClientAddress, out.ClientAddress)
	assert.Equal(t, in.Description, out.Description)
	assert.Equal(t, in.InvoiceDate, out.InvoiceDate)
	assert.Equal(t, in.DueDate, out.DueDate)
	assert.Equal(t, in.Departments, out.Departments)
	assert.Equal(t, in.DepartmentCode, out.DepartmentCode)
	assert.Equal(t, 18, out.GSTRate)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt), "created_at: %v", out.CreatedAt)

	assert.Equal(t, "3001.09", out.Subtotal.StringFixed(2))
	assert.Equal(t, "540.09", out.GSTAmount.StringFixed(2))
	assert.Equal(t, "3541.18", out.FinalTotal.StringFixed(2))
	assert.True(t, in.FinalTotal.Equal(out.FinalTotal))

	require.Len(t, out.Items, 2)
	for i := range in.Items {
		assert.Equal(t, in.Items[i].ServiceName, out.Items[i].ServiceName)
		assert.Equal(t, in.Items[i].Quantity, out.Items[i].Quantity)
		assert.True(t, in.Items[i].Amount.Equal(out.Items[i].Amount), "amount %d", i)
		assert.True(t, in.Items[i].Total.Equal(out.Items[i].Total), "total %d", i)
	}
}

func TestDocumento_SinItems(t *testing.T) {
	in := fullInvoice()
	in.Items = nil
	in.Subtotal = decimal.Zero
	in.GSTAmount = decimal.Zero
	in.FinalTotal = decimal.Zero

	out, err := postgres.RoundTripDoc("6f1c2d3e-0000-4000-8000-000000000001", in)
	require.NoError(t, err)

	assert.Empty(t, out.Items)
	assert.True(t, out.Subtotal.IsZero())
	assert.True(t, out.GSTAmount.IsZero())
	assert.True(t, out.FinalTotal.IsZero())
	assert.Equal(t, in.Departments, out.Departments)
}
