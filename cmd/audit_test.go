package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	"tagsweep.dev/pkg/tagsweep/internal/domain"
	domainmocks "tagsweep.dev/pkg/tagsweep/internal/domain/mocks"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

func TestAuditCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newAuditCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Audit", mock.Anything, mock.MatchedBy(func(args domain.AuditArgs) bool {
		return args.Parallel == 4 &&
			args.SearchTimeout == 30*time.Second &&
			args.Reports == m.Path(".tagsweep-reports") &&
			args.Format == adapter.FormatJSON
	})).Return(nil)

	cmd.SetArgs([]string{"audit"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestAuditCmd_ParallelFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newAuditCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Audit", mock.Anything, mock.MatchedBy(func(args domain.AuditArgs) bool {
		return args.Parallel == 2
	})).Return(nil)

	cmd.SetArgs([]string{"audit", "--parallel", "2", "."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestAuditCmd_PositionalBase(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newAuditCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Audit", mock.Anything, mock.MatchedBy(func(args domain.AuditArgs) bool {
		return args.Scan.Base == m.Path("crates/events/src")
	})).Return(nil)

	cmd.SetArgs([]string{"audit", "crates/events/src"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestAuditCmd_PropagatesWorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newAuditCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Audit", mock.Anything, mock.Anything).Return(assert.AnError)

	cmd.SetArgs([]string{"audit"})
	err := cmd.Execute()
	require.Error(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestNewAuditCmd(t *testing.T) {
	cmd := newAuditCmd()

	assert.Equal(t, "audit [base]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, auditLongDescription, cmd.Long)

	parallelFlag := cmd.Flags().Lookup(parallelFlagName)
	assert.NotNil(t, parallelFlag)
}
