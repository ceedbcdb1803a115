package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type categoriesRequest struct {
	Categories []string `validate:"omitempty,dive,shop_category"`
}

func TestValidate_ShopCategory(t *testing.T) {
	assert.NoError(t, Validate(categoriesRequest{Categories: []string{"plants", "landscaping"}}))
	assert.NoError(t, Validate(categoriesRequest{}))
	assert.Error(t, Validate(categoriesRequest{Categories: []string{"plants", "furniture"}}))
}
