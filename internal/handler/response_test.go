package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("pph21: %w: %w \"x\"", domain.ErrInvalidInput, domain.ErrUnknownSubjectType), http.StatusBadRequest, "UNKNOWN_SUBJECT_TYPE"},
		{fmt.Errorf("ppn: %w: mode", domain.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrAllocationFailure, http.StatusServiceUnavailable, "CAPACITY_EXHAUSTED"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{context.Canceled, http.StatusRequestTimeout, "REQUEST_CANCELED"},
		{domain.ErrInvalidTable, http.StatusInternalServerError, "INVALID_TABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestMapDomainError_InputMessageKeepsDetail(t *testing.T) {
	_, _, msg := handler.MapDomainError(fmt.Errorf("pph22: %w: rate is negative", domain.ErrInvalidInput))
	assert.Equal(t, "pph22: invalid input: rate is negative", msg)
}
