package dev

import (
	"github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
	"time"
)

// Error is a failure report attached to a rejected operation, logged with a
// stable slug so repeated failures can be correlated.
type Error struct {
	Time      time.Time              `json:"time"`
	Component string                 `json:"component"`
	Name      string                 `json:"name"`
	Error     string                 `json:"error"`
	Extra     map[string]interface{} `json:"extra"`
}

func (e Error) Slug() string {
	u, _ := uuid.NewV4()
	return u.String()
}

func NewError(component, name string, err error, extra map[string]interface{}) Error {
	return Error{
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Extra:     extra,
	}
}

func (e Error) Log() {
	zap.L().With(
		zap.String("slug", e.Slug()),
		zap.String("component", e.Component),
		zap.String("name", e.Name),
		zap.String("error", e.Error),
		zap.Any("extra", e.Extra),
	).Warn("Operation rejected")
}
