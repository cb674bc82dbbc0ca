package statement

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Konsultn-Engineering/namedbind/database"
)

type mockHandle struct {
	mock.Mock
}

func (m *mockHandle) BindPositional(position int, value any) error {
	return m.Called(position, value).Error(0)
}

func (m *mockHandle) BindNamed(name string, value any) error {
	return m.Called(name, value).Error(0)
}

func (m *mockHandle) Execute(ctx context.Context, mode database.ExecuteMode) error {
	return m.Called(ctx, mode).Error(0)
}

func (m *mockHandle) RowsAffected() int64 {
	return m.Called().Get(0).(int64)
}

func (m *mockHandle) Close() error {
	return m.Called().Error(0)
}

type mockConnection struct {
	mock.Mock
}

func (m *mockConnection) ExecuteMode() database.ExecuteMode {
	return m.Called().Get(0).(database.ExecuteMode)
}

type mockPreparer struct {
	mock.Mock
}

func (m *mockPreparer) Prepare(ctx context.Context, query string) (database.StatementHandle, error) {
	args := m.Called(ctx, query)
	h, _ := args.Get(0).(database.StatementHandle)
	return h, args.Error(1)
}
