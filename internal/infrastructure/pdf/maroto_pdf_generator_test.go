package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/infrastructure/pdf"
)

func TestRenderClosing_GeneraPDF(t *testing.T) {
	c := &entity.CashClosing{
		ID:                 "0b7c4c1e-1111-4222-8333-944455556666",
		UserID:             "u1",
		RangeStart:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		RangeEnd:           time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
		TotalTime:          decimal.NewFromInt(120),
		TotalProducts:      decimal.NewFromInt(45),
		TotalDiscounts:     decimal.NewFromInt(5),
		TotalExtraServices: decimal.NewFromInt(10),
		TotalGeneral:       decimal.NewFromInt(170),
		Withdrawn:          decimal.NewFromInt(150),
		Change:             decimal.NewFromInt(20),
		Note:               "sin novedad",
		SessionCount:       4,
		CreatedAt:          time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
	}

	out, err := pdf.NewReceiptGenerator("Billar Tiochichi").RenderClosing(c, "cajero1")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
