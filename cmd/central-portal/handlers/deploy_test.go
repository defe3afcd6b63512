package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/ui/tui"
)

func TestDeploy_Success(t *testing.T) {
	saveAndRestoreFactories(t)
	mock := &central.MockClient{}
	useMockClient(mock)
	useRequest(testRequest())

	var err error
	output := captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml"})
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Deployed")
	assert.Contains(t, output, "WLAN corp (SSID Corp")
	assert.Equal(t, []string{
		"VLANExists(50)",
		"CreateVLAN(50)",
		"CreateNamedVLAN(corp-vlan-50)",
		"CreateWLAN(corp)",
		"CreateScopeBinding(wlan-ssids/corp@9)",
	}, mock.Calls())
}

func TestDeploy_Failure(t *testing.T) {
	saveAndRestoreFactories(t)
	mock := &central.MockClient{
		CreateWLANFunc: func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
			return nil, &central.APIError{StatusCode: 400, Message: "quota exceeded"}
		},
	}
	useMockClient(mock)
	useRequest(testRequest())

	var err error
	output := captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml", NoTUI: true})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployment of WLAN corp failed")
	assert.Contains(t, err.Error(), "quota exceeded")

	var stepErr *provisioning.StepError
	assert.ErrorAs(t, err, &stepErr)

	assert.Contains(t, output, "Deployment failed")
	assert.Contains(t, output, "Rolled back")
	assert.Equal(t, []string{"DeleteNamedVLAN(corp-vlan-50)", "DeleteVLAN(50)"},
		append(mock.CallsTo("DeleteNamedVLAN"), mock.CallsTo("DeleteVLAN")...))
}

func TestDeploy_ConnectError(t *testing.T) {
	saveAndRestoreFactories(t)
	loadSettings = func() *config.Settings { return &config.Settings{Timeouts: config.LoadTimeouts()} }

	err := Deploy(context.Background(), DeployOptions{File: "wlan.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvBaseURL)
}

func TestDeploy_LoadError(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	loadRequest = func(string) (*config.WLANRequest, error) {
		return nil, errors.New("no such file")
	}

	err := Deploy(context.Background(), DeployOptions{File: "missing.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load request")
}

func TestDeploy_UsesTUIOnTerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	mock := &central.MockClient{}
	useMockClient(mock)
	useRequest(testRequest())
	stdoutIsTerminal = func() bool { return true }

	var (
		gotName, gotScope string
		gotPlan           []provisioning.Step
	)
	runDeployTUI = func(ctx context.Context, wlanName, scope string, plan tui.PlanFunc, run tui.RunFunc, obs *tui.Observer) (*provisioning.Result, error) {
		require.NotNil(t, obs)
		gotName, gotScope = wlanName, scope
		gotPlan = plan()
		return run(ctx)
	}

	var err error
	captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml"})
	})

	require.NoError(t, err)
	assert.Equal(t, "corp", gotName)
	assert.Equal(t, config.SiteScope("9", "HQ").String(), gotScope)
	assert.Len(t, gotPlan, 4)
	assert.NotEmpty(t, mock.CallsTo("CreateWLAN"))
}

func TestDeploy_NoTUIFlag(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	useRequest(testRequest())
	stdoutIsTerminal = func() bool { return true }
	runDeployTUI = func(context.Context, string, string, tui.PlanFunc, tui.RunFunc, *tui.Observer) (*provisioning.Result, error) {
		t.Fatal("progress list shown despite --no-tui")
		return nil, nil
	}

	var err error
	captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml", NoTUI: true})
	})
	require.NoError(t, err)
}

func TestDeploy_InterruptedTUI(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	useRequest(testRequest())
	stdoutIsTerminal = func() bool { return true }
	runDeployTUI = func(context.Context, string, string, tui.PlanFunc, tui.RunFunc, *tui.Observer) (*provisioning.Result, error) {
		return nil, errors.New("deployment of WLAN corp interrupted")
	}

	var err error
	output := captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml"})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted")
	assert.NotContains(t, output, "Deployed")
}

func TestDeploy_InterruptRollsBack(t *testing.T) {
	saveAndRestoreFactories(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mock := &central.MockClient{
		CreateWLANFunc: func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
			// SIGINT arrives while the WLAN is being created.
			cancel()
			return nil, context.Canceled
		},
	}
	useMockClient(mock)
	useRequest(testRequest())
	store := newMemoryStore()
	useStore(store)

	var err error
	output := captureOutput(func() {
		err = Deploy(ctx, DeployOptions{File: "wlan.yaml", NoTUI: true, ReportBucket: "reports"})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, output, "Deployment failed")
	assert.Equal(t, []string{
		"VLANExists(50)",
		"CreateVLAN(50)",
		"CreateNamedVLAN(corp-vlan-50)",
		"CreateWLAN(corp)",
		"DeleteNamedVLAN(corp-vlan-50)",
		"DeleteVLAN(50)",
	}, mock.Calls())
	assert.Len(t, store.keys(), 1, "the report of an interrupted run is archived")
}

func TestDeploy_ArchivesReport(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	useRequest(testRequest())
	store := newMemoryStore()
	useStore(store)

	var err error
	captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml", ReportBucket: "reports"})
	})

	require.NoError(t, err)
	keys := store.keys()
	require.Len(t, keys, 1)
	assert.Regexp(t, `^reports/deployments/corp/[0-9a-f-]+\.json$`, keys[0])
	assert.NotContains(t, string(store.objects[keys[0]]), "secretpass")
}

func TestDeploy_ArchiveFailureKeepsOutcome(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	useRequest(testRequest())
	store := newMemoryStore()
	store.putErr = errors.New("access denied")
	useStore(store)

	var err error
	captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml", ReportBucket: "reports"})
	})

	require.NoError(t, err)
	assert.Empty(t, store.keys())
}

func TestDeploy_WritesMetricsFile(t *testing.T) {
	saveAndRestoreFactories(t)
	useMockClient(&central.MockClient{})
	useRequest(testRequest())
	path := filepath.Join(t.TempDir(), "deploy.prom")

	var err error
	captureOutput(func() {
		err = Deploy(context.Background(), DeployOptions{File: "wlan.yaml", MetricsFile: path})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "central_deployment_runs_total")
	assert.Contains(t, string(data), "central_deployment_step_duration_seconds")
}

func TestBuildRequest(t *testing.T) {
	t.Run("marks an existing VLAN", func(t *testing.T) {
		saveAndRestoreFactories(t)
		useRequest(testRequest())
		mock := &central.MockClient{
			VLANExistsFunc: func(context.Context, int) (bool, error) { return true, nil },
		}

		req, err := buildRequest(context.Background(), mock, "wlan.yaml")
		require.NoError(t, err)
		assert.True(t, req.Network.VLANExists)
	})

	t.Run("lookup failure keeps the request", func(t *testing.T) {
		saveAndRestoreFactories(t)
		useRequest(testRequest())
		mock := &central.MockClient{
			VLANExistsFunc: func(context.Context, int) (bool, error) { return false, errors.New("timeout") },
		}

		req, err := buildRequest(context.Background(), mock, "wlan.yaml")
		require.NoError(t, err)
		assert.False(t, req.Network.VLANExists)
	})

	t.Run("skips lookup when the file says the VLAN exists", func(t *testing.T) {
		saveAndRestoreFactories(t)
		r := testRequest()
		r.Network.VLANExists = true
		useRequest(r)
		mock := &central.MockClient{}

		_, err := buildRequest(context.Background(), mock, "wlan.yaml")
		require.NoError(t, err)
		assert.Empty(t, mock.Calls())
	})

	t.Run("wizard needs a terminal", func(t *testing.T) {
		saveAndRestoreFactories(t)

		_, err := buildRequest(context.Background(), &central.MockClient{}, "")
		assert.ErrorIs(t, err, errNoTerminal)
	})

	t.Run("runs the wizard without a file", func(t *testing.T) {
		saveAndRestoreFactories(t)
		stdinIsTerminal = func() bool { return true }
		mock := &central.MockClient{}
		runWizard = func(_ context.Context, lookups central.LookupService) (*config.WLANRequest, error) {
			assert.Same(t, mock, lookups)
			return testRequest(), nil
		}

		req, err := buildRequest(context.Background(), mock, "")
		require.NoError(t, err)
		assert.Equal(t, "corp", req.Name)
	})

	t.Run("wizard errors are returned unchanged", func(t *testing.T) {
		for _, wizardErr := range []error{
			fmt.Errorf("wizard canceled: %w", errors.New("user aborted")),
			fmt.Errorf("invalid answers: %w", errors.New("VLAN id must be between 1 and 4094")),
		} {
			saveAndRestoreFactories(t)
			stdinIsTerminal = func() bool { return true }
			runWizard = func(context.Context, central.LookupService) (*config.WLANRequest, error) {
				return nil, wizardErr
			}

			_, err := buildRequest(context.Background(), &central.MockClient{}, "")
			require.ErrorIs(t, err, wizardErr)
			assert.Equal(t, wizardErr.Error(), err.Error())
			assert.LessOrEqual(t, strings.Count(err.Error(), "canceled"), 1)
		}
	})
}
