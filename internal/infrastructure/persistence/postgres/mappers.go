package postgres

import (
	"fmt"
	"strconv"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// toDomainOrder: maps db model to domain entity
func toDomainOrder(m OrderModel) (*domain.Order, error) {
	total, err := decimal.NewFromString(m.Total)
	if err != nil {
		return nil, fmt.Errorf("order %d has unreadable total %q: %w", m.Number, m.Total, err)
	}
	return &domain.Order{
		Number:   strconv.FormatInt(m.Number, 10),
		Key:      m.OrderKey,
		Status:   domain.OrderStatus(m.Status),
		Currency: m.Currency,
		Total:    total,
		Shipping: domain.Address{
			Country:  m.ShippingCountry,
			State:    m.ShippingState,
			City:     m.ShippingCity,
			Postcode: m.ShippingPostcode,
			Line1:    m.ShippingLine1,
			Line2:    m.ShippingLine2,
		},
		TransactionRef: m.TransactionRef,
		CreatedAt:      m.CreatedAt,
	}, nil
}

// toOrderModel: maps domain entity to db model. Number is left to the database.
func toOrderModel(o *domain.Order) OrderModel {
	return OrderModel{
		OrderKey:         o.Key,
		Status:           string(o.Status),
		Currency:         o.Currency,
		Total:            o.Total.String(),
		ShippingCountry:  o.Shipping.Country,
		ShippingState:    o.Shipping.State,
		ShippingCity:     o.Shipping.City,
		ShippingPostcode: o.Shipping.Postcode,
		ShippingLine1:    o.Shipping.Line1,
		ShippingLine2:    o.Shipping.Line2,
		TransactionRef:   o.TransactionRef,
	}
}

func toDomainCartLine(m CartLineModel) (domain.CartLine, error) {
	price, err := decimal.NewFromString(m.UnitPrice)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("cart line %s has unreadable price %q: %w", m.ProductID, m.UnitPrice, err)
	}
	return domain.CartLine{
		ProductID: m.ProductID,
		Title:     m.Title,
		Quantity:  m.Quantity,
		UnitPrice: price,
	}, nil
}
