package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/platform/s3"
	"github.com/secure-ssid/central-portal/internal/report"
)

// saveAndRestoreFactories saves and restores every factory variable.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadSettings := loadSettings
	origNewResourceClient := newResourceClient
	origStdinIsTerminal := stdinIsTerminal
	origStdoutIsTerminal := stdoutIsTerminal
	origReadPassword := readPassword
	origLoadRequest := loadRequest
	origRunWizard := runWizard
	origRunDeployTUI := runDeployTUI
	origMetricsGatherer := metricsGatherer
	origNewObjectStore := newObjectStore
	origFileExists := fileExists
	origSaveRequest := saveRequest
	origConfirmOverwrite := confirmOverwrite
	origVerbosity := verbosity

	t.Cleanup(func() {
		loadSettings = origLoadSettings
		newResourceClient = origNewResourceClient
		stdinIsTerminal = origStdinIsTerminal
		stdoutIsTerminal = origStdoutIsTerminal
		readPassword = origReadPassword
		loadRequest = origLoadRequest
		runWizard = origRunWizard
		runDeployTUI = origRunDeployTUI
		metricsGatherer = origMetricsGatherer
		newObjectStore = origNewObjectStore
		fileExists = origFileExists
		saveRequest = origSaveRequest
		confirmOverwrite = origConfirmOverwrite
		verbosity = origVerbosity
	})

	// Tests never touch a real terminal.
	stdinIsTerminal = func() bool { return false }
	stdoutIsTerminal = func() bool { return false }
}

// useMockClient routes connect to mock.
func useMockClient(mock *central.MockClient) {
	loadSettings = func() *config.Settings {
		return &config.Settings{BaseURL: "https://central.example.com", Token: "token", Timeouts: config.LoadTimeouts()}
	}
	newResourceClient = func(*config.Settings, logr.Logger) (central.ResourceClient, error) {
		return mock, nil
	}
}

func testRequest() *config.WLANRequest {
	return &config.WLANRequest{
		Name:    "corp",
		SSID:    "Corp",
		Enabled: true,
		Scope:   config.SiteScope("9", "HQ"),
		Network: config.NetworkSettings{VLANID: 50, ForwardMode: config.ForwardBridge},
		Auth:    config.AuthSettings{Family: config.SecurityPersonal, Passphrase: "secretpass"},
	}
}

// useRequest makes loadRequest return a copy of req for any path.
func useRequest(req *config.WLANRequest) {
	loadRequest = func(string) (*config.WLANRequest, error) {
		c := req.Clone()
		return &c, nil
	}
}

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	f()

	w.Close()
	os.Stdout = old
	<-done
	return buf.String()
}

// memoryStore is an in-memory report.ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

var _ report.ObjectStore = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) PutObject(ctx context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (m *memoryStore) ListObjects(_ context.Context, bucket, prefix string) ([]s3.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []s3.Object
	for k, v := range m.objects {
		key := strings.TrimPrefix(k, bucket+"/")
		if strings.HasPrefix(k, bucket+"/") && strings.HasPrefix(key, prefix) {
			out = append(out, s3.Object{Key: key, Size: int64(len(v))})
		}
	}
	return out, nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

func useStore(store *memoryStore) {
	newObjectStore = func(*config.StorageSettings) (report.ObjectStore, error) {
		return store, nil
	}
}
