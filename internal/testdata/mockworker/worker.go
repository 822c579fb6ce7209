package mockworker

import (
	"ga4-report-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(snapshot model.Snapshot) {
	m.Called(snapshot)
}

func (m *Worker) Shutdown() {
	m.Called()
}
