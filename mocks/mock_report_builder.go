package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) Build(ctx context.Context, raw domain.RawTaxInputs, p *domain.Profile) (*compare.Report, error) {
	args := m.Called(ctx, raw, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compare.Report), args.Error(1)
}
