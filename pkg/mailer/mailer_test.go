package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tpl := "გამარჯობა {{name}}, შეკვეთა {{order_number}} მიღებულია. ჯამი: {{total}} ₾"
	got := Render(tpl, map[string]string{
		"name":         "ნინო",
		"order_number": "GAM-1756500000000-7",
		"total":        "45.50",
	})
	assert.Equal(t, "გამარჯობა ნინო, შეკვეთა GAM-1756500000000-7 მიღებულია. ჯამი: 45.50 ₾", got)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	got := Render("hi {{name}}, see {{missing}}", map[string]string{"name": "x"})
	assert.Equal(t, "hi x, see {{missing}}", got)
}
