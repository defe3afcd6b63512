package orchestration

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
)

type eventLog struct {
	mu     sync.Mutex
	events []provisioning.Event
}

func (l *eventLog) Event(e provisioning.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) types() []provisioning.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]provisioning.EventType, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type)
	}
	return out
}

func stepIDs(steps []provisioning.Step) []provisioning.StepID {
	out := make([]provisioning.StepID, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}

func stepStatus(steps []provisioning.Step, id provisioning.StepID) provisioning.StepStatus {
	for _, s := range steps {
		if s.ID == id {
			return s.Status
		}
	}
	return ""
}

var _ = Describe("Deployer", func() {
	var (
		ctx      context.Context
		client   *central.MockClient
		events   *eventLog
		deployer *Deployer
		req      *config.WLANRequest
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &central.MockClient{}
		events = &eventLog{}
		deployer = NewDeployer(client,
			WithObserver(events),
			WithOrchestratorOptions(provisioning.WithRunIDGenerator(func() string { return "run-1" })),
		)
		req = &config.WLANRequest{
			Name:    "corp",
			SSID:    "Corp",
			Enabled: true,
			Scope:   config.SiteScope("9", "HQ"),
			Network: config.NetworkSettings{VLANID: 50, ForwardMode: config.ForwardBridge},
			Auth:    config.AuthSettings{Family: config.SecurityPersonal, Passphrase: "secretpass"},
		}
	})

	Context("when every step succeeds", func() {
		It("should deploy a site-scoped bridged WLAN end to end", func() {
			By("Checking the plan")
			Expect(stepIDs(deployer.Plan(req))).To(Equal([]provisioning.StepID{
				provisioning.StepVLAN,
				provisioning.StepNamedVLAN,
				provisioning.StepWLAN,
				provisioning.StepScopeWLAN,
			}))

			By("Running the deployment")
			result, err := deployer.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Succeeded()).To(BeTrue())
			Expect(result.Degraded()).To(BeFalse())
			Expect(result.RunID).To(Equal("run-1"))
			Expect(result.Message).To(Equal("WLAN corp deployed"))

			for _, s := range result.Steps {
				Expect(s.Status).To(Equal(provisioning.StatusCompleted), "step %s", s.ID)
			}

			By("Checking the API calls")
			Expect(client.Calls()).To(Equal([]string{
				"CreateVLAN(50)",
				"CreateNamedVLAN(corp-vlan-50)",
				"CreateWLAN(corp)",
				"CreateScopeBinding(wlan-ssids/corp@9)",
			}))

			By("Checking the ledger")
			Expect(result.Created).To(Equal([]provisioning.CreatedResource{
				{Type: provisioning.ResourceVLAN, Identifier: "50"},
				{Type: provisioning.ResourceNamedVLAN, Identifier: "corp-vlan-50"},
				{Type: provisioning.ResourceWLAN, Identifier: "corp"},
				{Type: provisioning.ResourceScopeBinding, Identifier: "wlan-ssids/corp@9"},
			}))
			Expect(result.RolledBack).To(BeEmpty())

			Expect(events.types()).To(HaveExactElements(
				provisioning.EventRunStarted,
				provisioning.EventStepStarted, provisioning.EventResourceCreated, provisioning.EventStepCompleted,
				provisioning.EventStepStarted, provisioning.EventResourceCreated, provisioning.EventStepCompleted,
				provisioning.EventStepStarted, provisioning.EventResourceCreated, provisioning.EventStepCompleted,
				provisioning.EventStepStarted, provisioning.EventResourceCreated, provisioning.EventStepCompleted,
				provisioning.EventRunSucceeded,
			))
		})

		It("should reference an existing VLAN directly", func() {
			req.Network.VLANExists = true
			req.Scope = config.GlobalScope()

			var sent central.WLANConfig
			client.CreateWLANFunc = func(_ context.Context, name string, cfg central.WLANConfig, _ central.WLANCreateOpts) (*central.WLANRef, error) {
				sent = cfg
				return &central.WLANRef{Name: name, SSID: cfg.SSID}, nil
			}

			result, err := deployer.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(stepIDs(result.Steps)).To(Equal([]provisioning.StepID{provisioning.StepWLAN}))
			Expect(sent.VLANIDRange).To(Equal([]string{"50"}))
			Expect(client.Calls()).To(Equal([]string{"CreateWLAN(corp)"}))
		})
	})

	Context("when a fatal step fails", func() {
		It("should compensate the created resources in reverse order", func() {
			client.CreateWLANFunc = func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
				return nil, &central.APIError{StatusCode: 403, Message: "quota exceeded"}
			}

			result, err := deployer.Deploy(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("Failed to create WLAN: quota exceeded"))
			Expect(result.State).To(Equal(provisioning.RunFailed))
			Expect(result.Message).To(Equal("Failed to create WLAN: quota exceeded"))

			By("Checking step statuses")
			Expect(stepStatus(result.Steps, provisioning.StepVLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepNamedVLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepWLAN)).To(Equal(provisioning.StatusFailed))
			Expect(stepStatus(result.Steps, provisioning.StepScopeWLAN)).To(Equal(provisioning.StatusPending))

			By("Checking the compensating deletes")
			Expect(client.CallsTo("DeleteNamedVLAN")).To(Equal([]string{"DeleteNamedVLAN(corp-vlan-50)"}))
			Expect(client.CallsTo("DeleteVLAN")).To(Equal([]string{"DeleteVLAN(50)"}))
			Expect(client.CallsTo("DeleteWLAN")).To(BeEmpty())
			Expect(client.Calls()[len(client.Calls())-2:]).To(Equal([]string{
				"DeleteNamedVLAN(corp-vlan-50)",
				"DeleteVLAN(50)",
			}))
			Expect(result.RolledBack).To(HaveLen(2))
			Expect(result.Orphaned).To(BeEmpty())
		})

		It("should report resources it could not delete", func() {
			client.CreateWLANFunc = func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
				return nil, errors.New("connection reset")
			}
			client.DeleteVLANFunc = func(context.Context, int) error {
				return &central.APIError{StatusCode: 409, Message: "vlan in use"}
			}

			result, err := deployer.Deploy(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(result.Orphaned).To(Equal([]provisioning.CreatedResource{
				{Type: provisioning.ResourceVLAN, Identifier: "50"},
			}))
			Expect(events.types()).To(ContainElement(provisioning.EventCompensationFailed))
		})
	})

	Context("when an optional step fails", func() {
		It("should keep registered MPSK keys and succeed", func() {
			req.Auth.Family = config.SecurityMPSK
			req.Auth.MPSK = []config.MPSKEntry{
				{Name: "iot", Passphrase: "iotdevices"},
				{Name: "voice", Passphrase: "voicephones", VLAN: 60},
			}
			client.CreateMPSKRegistrationFunc = func(_ context.Context, reg central.MPSKRegistration) (*central.MPSKRef, error) {
				if reg.Name == "corp-voice" {
					return nil, &central.APIError{StatusCode: 400, Message: "invalid passphrase"}
				}
				return &central.MPSKRef{ID: reg.Name, Name: reg.Name}, nil
			}

			result, err := deployer.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Succeeded()).To(BeTrue())
			Expect(result.Degraded()).To(BeTrue())
			Expect(result.Message).To(Equal("WLAN corp deployed with 1 failed optional step(s)"))

			Expect(stepStatus(result.Steps, provisioning.StepVLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepNamedVLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepWLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepScopeWLAN)).To(Equal(provisioning.StatusCompleted))
			Expect(stepStatus(result.Steps, provisioning.StepMPSK)).To(Equal(provisioning.StatusFailed))

			Expect(client.CallsTo("CreateMPSKRegistration")).To(Equal([]string{
				"CreateMPSKRegistration(corp-default)",
				"CreateMPSKRegistration(corp-iot)",
				"CreateMPSKRegistration(corp-voice)",
			}))
			Expect(client.CallsTo("DeleteVLAN")).To(BeEmpty())
			Expect(result.Created).To(ContainElements(
				provisioning.CreatedResource{Type: provisioning.ResourceMPSKKey, Identifier: "corp-default"},
				provisioning.CreatedResource{Type: provisioning.ResourceMPSKKey, Identifier: "corp-iot"},
			))
		})

		It("should continue after a failed site binding", func() {
			client.CreateScopeBindingFunc = func(context.Context, central.ScopeBinding) (*central.BindingRef, error) {
				return nil, &central.APIError{StatusCode: 404, Message: "site not found"}
			}

			result, err := deployer.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Degraded()).To(BeTrue())
			for _, s := range result.Steps {
				if s.ID == provisioning.StepScopeWLAN {
					Expect(s.ErrorMessage).To(Equal("site not found"))
				}
			}
		})
	})

	Context("when the request is invalid", func() {
		It("should fail without calling the API", func() {
			req.Network.VLANID = 5000

			result, err := deployer.Deploy(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(provisioning.IsPrecondition(err)).To(BeTrue())
			Expect(result.State).To(Equal(provisioning.RunFailed))
			Expect(client.Calls()).To(BeEmpty())
		})
	})

	Context("metrics", func() {
		It("should count runs by result", func() {
			before := testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("succeeded"))
			_, err := deployer.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("succeeded"))).To(Equal(before + 1))
		})

		It("should count compensating deletes", func() {
			client.CreateWLANFunc = func(context.Context, string, central.WLANConfig, central.WLANCreateOpts) (*central.WLANRef, error) {
				return nil, errors.New("boom")
			}
			before := testutil.ToFloat64(compensationsTotal.WithLabelValues("vlan", "deleted"))
			failedBefore := testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("failed"))

			_, err := deployer.Deploy(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(testutil.ToFloat64(compensationsTotal.WithLabelValues("vlan", "deleted"))).To(Equal(before + 1))
			Expect(testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("failed"))).To(Equal(failedBefore + 1))
		})

		It("should leave metrics alone when disabled", func() {
			quiet := NewDeployer(client, WithMetrics(false))
			before := testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("succeeded"))
			_, err := quiet.Deploy(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(testutil.ToFloat64(deploymentRunsTotal.WithLabelValues("succeeded"))).To(Equal(before))
		})
	})

	It("should register an executor for every step", func() {
		seen := map[provisioning.StepID]bool{}
		for _, e := range Executors() {
			seen[e.Step()] = true
		}
		Expect(seen).To(HaveLen(5))
		Expect(seen).To(HaveKey(provisioning.StepMPSK))
	})
})
