// Package servers holds the HTTP API described by openapi.json: request and
// response types, the ServerInterface an implementation provides, and echo routing.
package servers

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Courier defines model for Courier.
type Courier struct {
	Id       openapi_types.UUID `json:"id"`
	Location Location           `json:"location"`
	Name     string             `json:"name"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location defines model for Location.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewCourier defines model for NewCourier.
type NewCourier struct {
	Name  string `json:"name"`
	Speed int    `json:"speed"`
}

// NewStoragePlace defines model for NewStoragePlace.
type NewStoragePlace struct {
	Name        string `json:"name"`
	TotalVolume int    `json:"totalVolume"`
}

// Order defines model for Order.
type Order struct {
	Id       openapi_types.UUID `json:"id"`
	Location Location           `json:"location"`
	Status   OrderStatus        `json:"status"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

const (
	OrderStatusAssigned OrderStatus = "Assigned"
	OrderStatusCreated  OrderStatus = "Created"
)

// CreateCourierJSONRequestBody defines body for CreateCourier for application/json ContentType.
type CreateCourierJSONRequestBody = NewCourier

// AddStoragePlaceJSONRequestBody defines body for AddStoragePlace for application/json ContentType.
type AddStoragePlaceJSONRequestBody = NewStoragePlace
