package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receiptbot/bill-splitter/internal/common"
)

type stubRecognizer struct {
	text string
	err  error
}

func (s *stubRecognizer) Recognize(context.Context, []byte) (string, error) {
	return s.text, s.err
}

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

const receiptJSON = `{
	"merchant": "Diner",
	"date": "2026-08-12",
	"totalAmount": 25.00,
	"items": [
		{"name": "Burger", "quantity": 1, "unitPrice": 10.00, "totalPrice": 10.00},
		{"name": "Salad", "quantity": 1, "unitPrice": 8.00, "totalPrice": 8.00},
		{"name": "Drinks", "quantity": 2, "unitPrice": 2.00, "totalPrice": 4.00}
	],
	"serviceCharge": 1.00,
	"taxAmount": 2.00
}`

func TestOrchestratorExtract(t *testing.T) {
	image := []byte("not-a-real-jpeg")

	t.Run("success", func(t *testing.T) {
		completer := &stubCompleter{response: receiptJSON}
		o := NewOrchestrator(&stubRecognizer{text: "BURGER 10.00\nSALAD 8.00"}, completer, nil)

		data, err := o.Extract(context.Background(), image)
		require.NoError(t, err)
		assert.Equal(t, "Diner", data.Merchant)
		assert.Equal(t, 25.00, data.TotalAmount)
		assert.Equal(t, 1.00, data.ServiceCharge)
		assert.Equal(t, 2.00, data.TaxAmount)
		require.Len(t, data.Items, 3)
		assert.Equal(t, "Burger", data.Items[0].Name)
		assert.Equal(t, 10.00, data.Items[0].TotalPrice)

		// The structuring prompt carries the OCR text and the schema.
		require.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], "BURGER 10.00")
		assert.Contains(t, completer.prompts[0], "totalAmount")
	})

	t.Run("fenced response accepted", func(t *testing.T) {
		completer := &stubCompleter{response: "```json\n" + receiptJSON + "\n```"}
		o := NewOrchestrator(&stubRecognizer{text: "some text"}, completer, nil)

		data, err := o.Extract(context.Background(), image)
		require.NoError(t, err)
		assert.Equal(t, 25.00, data.TotalAmount)
	})

	t.Run("null optional fields accepted", func(t *testing.T) {
		completer := &stubCompleter{response: `{
			"merchant": null,
			"date": null,
			"totalAmount": 10.00,
			"items": [{"name": "Burger", "quantity": 1, "unitPrice": 10.00, "totalPrice": 10.00}],
			"serviceCharge": null,
			"taxAmount": null
		}`}
		o := NewOrchestrator(&stubRecognizer{text: "some text"}, completer, nil)

		data, err := o.Extract(context.Background(), image)
		require.NoError(t, err)
		assert.Empty(t, data.Merchant)
		assert.Zero(t, data.ServiceCharge)
		assert.Zero(t, data.TaxAmount)
		assert.Equal(t, 10.00, data.TotalAmount)
	})

	t.Run("recognition error", func(t *testing.T) {
		o := NewOrchestrator(&stubRecognizer{err: assert.AnError}, &stubCompleter{}, nil)
		_, err := o.Extract(context.Background(), image)
		require.Error(t, err)
		assert.True(t, common.IsStage(err, common.StageExtraction))
	})

	t.Run("empty recognition text", func(t *testing.T) {
		o := NewOrchestrator(&stubRecognizer{text: "  \n "}, &stubCompleter{}, nil)
		_, err := o.Extract(context.Background(), image)
		require.Error(t, err)
		assert.True(t, common.IsStage(err, common.StageExtraction))
	})

	t.Run("non-json structuring response", func(t *testing.T) {
		completer := &stubCompleter{response: "I could not read this receipt, sorry."}
		o := NewOrchestrator(&stubRecognizer{text: "some text"}, completer, nil)

		_, err := o.Extract(context.Background(), image)
		require.Error(t, err)
		var pe *common.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, common.StageExtraction, pe.Stage)
		// Raw response kept for diagnostics.
		assert.Contains(t, string(pe.Raw), "could not read")
	})

	t.Run("schema violation", func(t *testing.T) {
		// totalAmount missing
		completer := &stubCompleter{response: `{"merchant": "Diner", "items": []}`}
		o := NewOrchestrator(&stubRecognizer{text: "some text"}, completer, nil)

		_, err := o.Extract(context.Background(), image)
		require.Error(t, err)
		assert.True(t, common.IsStage(err, common.StageExtraction))
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		completer := &stubCompleter{response: `{
			"totalAmount": 5.00,
			"items": [{"name": "Burger", "quantity": -1, "unitPrice": 5.00, "totalPrice": 5.00}]
		}`}
		o := NewOrchestrator(&stubRecognizer{text: "some text"}, completer, nil)

		_, err := o.Extract(context.Background(), image)
		require.Error(t, err)
		assert.True(t, common.IsStage(err, common.StageExtraction))
	})
}
