package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/westbrown1/ripple/internal/schema"
)

// --- Mock RecordStore ---
// Every service fronts the same store interface, so one mock serves all the
// suites in this package.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Get(ctx context.Context, keys ...string) (schema.Record, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(schema.Record), args.Error(1)
}

func (m *MockRecordStore) Filter(ctx context.Context, criteria schema.Record) ([]schema.Record, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.Record), args.Error(1)
}

func (m *MockRecordStore) ActiveVersion(ctx context.Context, keys ...string) (*schema.Version, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.Version), args.Error(1)
}

func (m *MockRecordStore) VersionHistory(ctx context.Context, keys ...string) ([]schema.Version, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.Version), args.Error(1)
}

func (m *MockRecordStore) Create(ctx context.Context, fields schema.Record) (schema.Record, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(schema.Record), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, keys []string, changes schema.Record) (schema.Record, error) {
	args := m.Called(ctx, keys, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(schema.Record), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
