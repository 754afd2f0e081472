package formatting

import (
	"fmt"
	"strings"
	"time"

	"bootkit/internal/bootstrap"
	"bootkit/internal/container"
	"bootkit/internal/modularity"
)

// PhaseView is the serialized form of a bootstrap phase result.
type PhaseView struct {
	Phase    int    `json:"phase"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// ReportView is the serialized form of a bootstrap report.
type ReportView struct {
	RunID    string      `json:"runId"`
	Status   string      `json:"status"`
	Started  time.Time   `json:"started"`
	Duration string      `json:"duration"`
	Phases   []PhaseView `json:"phases"`
}

// NewReportView converts r for output.
func NewReportView(r *bootstrap.Report) ReportView {
	v := ReportView{
		RunID:    r.RunID.String(),
		Status:   r.Status,
		Started:  r.Started,
		Duration: r.Duration.String(),
		Phases:   make([]PhaseView, 0, len(r.Phases)),
	}
	for _, p := range r.Phases {
		v.Phases = append(v.Phases, PhaseView{
			Phase:    int(p.Phase),
			Name:     p.Name,
			Status:   p.Status,
			Duration: p.Duration.String(),
			Error:    p.Error,
		})
	}
	return v
}

// Table returns the phase table of the report.
func (v ReportView) Table() Table {
	t := Table{
		Title:        "Bootstrap " + v.RunID,
		Headers:      []string{"#", "Phase", "Status", "Duration", "Error"},
		StatusColumn: 2,
		Footer:       fmt.Sprintf("%s in %s", v.Status, v.Duration),
	}
	for _, p := range v.Phases {
		t.Rows = append(t.Rows, []string{fmt.Sprint(p.Phase), p.Name, p.Status, p.Duration, p.Error})
	}
	return t
}

// ModuleView is the serialized form of a cataloged module.
type ModuleView struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	DependsOn          []string `json:"dependsOn,omitempty"`
	InitializationMode string   `json:"initializationMode"`
	State              string   `json:"state"`
}

// NewModuleViews converts modules for output, keeping their order.
func NewModuleViews(modules []modularity.ModuleInfo) []ModuleView {
	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		views = append(views, ModuleView{
			Name:               m.Name,
			Type:               m.TypeName(),
			DependsOn:          append([]string(nil), m.DependsOn...),
			InitializationMode: m.InitializationMode.String(),
			State:              m.State.String(),
		})
	}
	return views
}

// ModulesTable returns the table of views.
func ModulesTable(views []ModuleView) Table {
	t := Table{
		Headers:      []string{"Name", "Type", "Mode", "State", "Depends On"},
		StatusColumn: 3,
		Footer:       fmt.Sprintf("%d modules", len(views)),
	}
	for _, m := range views {
		t.Rows = append(t.Rows, []string{m.Name, m.Type, m.InitializationMode, m.State, dashIfEmpty(strings.Join(m.DependsOn, ","))})
	}
	return t
}

// RegistrationView is the serialized form of a container registration.
type RegistrationView struct {
	Key            string `json:"key"`
	Implementation string `json:"implementation"`
	Lifetime       string `json:"lifetime"`
	Capability     string `json:"capability,omitempty"`
	Instance       bool   `json:"instance"`
}

// NewRegistrationViews converts container registrations for output.
func NewRegistrationViews(regs []container.Registration) []RegistrationView {
	views := make([]RegistrationView, 0, len(regs))
	for _, r := range regs {
		views = append(views, RegistrationView{
			Key:            string(r.Key),
			Implementation: r.Implementation,
			Lifetime:       r.Lifetime.String(),
			Capability:     string(r.Capability),
			Instance:       r.Instance != nil,
		})
	}
	return views
}

// RegistrationsTable returns the table of views.
func RegistrationsTable(views []RegistrationView) Table {
	t := Table{
		Headers:      []string{"Key", "Implementation", "Lifetime", "Capability"},
		StatusColumn: -1,
		Footer:       fmt.Sprintf("%d registrations", len(views)),
	}
	for _, r := range views {
		lifetime := r.Lifetime
		if r.Instance {
			lifetime = "instance"
		}
		t.Rows = append(t.Rows, []string{r.Key, r.Implementation, lifetime, dashIfEmpty(r.Capability)})
	}
	return t
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
