package services

import (
	"testing"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/stretchr/testify/assert"
)

func validOrder() *models.OrderRequest {
	return &models.OrderRequest{
		ServiceID:    "standard-retouch",
		Quantity:     4,
		RushDelivery: false,
		CustomerInfo: models.CustomerInfo{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
	}
}

func TestValidateOrder_Valid(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	assert.Nil(t, rv.ValidateOrder(validOrder()))
}

func TestValidateOrder_CollectsAllViolations(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	req := validOrder()
	req.Quantity = 0
	req.CustomerInfo.Email = ""

	violations := rv.ValidateOrder(req)

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "quantity")
	assert.Contains(t, fields, "customerInfo.email")
	assert.Len(t, violations, 2)
}

func TestValidateOrder_QuantityBounds(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	req := validOrder()
	req.Quantity = 51
	violations := rv.ValidateOrder(req)
	assert.Len(t, violations, 1)
	assert.Equal(t, "quantity", violations[0].Field)

	req.Quantity = 50
	assert.Nil(t, rv.ValidateOrder(req))
}

func TestValidateOrder_UnknownServiceIsAViolation(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	req := validOrder()
	req.ServiceID = "holographic-retouch"

	violations := rv.ValidateOrder(req)
	assert.Len(t, violations, 1)
	assert.Equal(t, "serviceId", violations[0].Field)
	assert.Equal(t, "unknown service", violations[0].Message)
}

func TestValidateOrder_CustomPricedServicePasses(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	req := validOrder()
	req.ServiceID = "custom-retouch"

	assert.Nil(t, rv.ValidateOrder(req))
}

func TestValidateOrder_FieldLengths(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	req := validOrder()
	req.CustomerInfo.Name = string(long)
	req.CustomerInfo.Phone = "123456789012345678901" // 21 chars

	violations := rv.ValidateOrder(req)
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "customerInfo.name")
	assert.Contains(t, fields, "customerInfo.phone")
}

func TestValidateContact_RequiredFields(t *testing.T) {
	rv := NewRequestValidator(DefaultPricingConfig())

	violations := rv.ValidateContact(&models.ContactRequest{})
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}
