package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/janindragoonetilleke-oss/codeassist/internal/config"
	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
	"github.com/janindragoonetilleke-oss/codeassist/internal/summary"
)

// Pusher is the telemetry pipeline entry point: it resolves record
// metadata, assembles the summary, and transmits it. Each call is
// independently re-entrant; the only shared state is the immutable
// configuration captured at construction.
type Pusher struct {
	cfg config.Config

	// Collaborators are exported for injection in tests; New wires the
	// production implementations.
	Reporter Reporter
	Identity IdentityResolver
	IP       IPResolver
	Dataset  DatasetResolver
	Log      *slog.Logger
	Now      func() time.Time
}

// New builds a Pusher with the production reporter and resolvers for the
// given configuration.
func New(cfg config.Config) *Pusher {
	return &Pusher{
		cfg:      cfg,
		Reporter: NewCollector(cfg.TelemetryBaseURL, nil),
		Identity: &FileIdentity{DataDir: cfg.DataDir},
		IP:       &HTTPIP{},
		Dataset:  &FileDataset{Path: cfg.DatasetPath},
		Log:      slog.Default(),
		Now:      time.Now,
	}
}

// Summarize runs the aggregation pipeline over ep and merges in the
// resolved metadata. Resolution failures become null fields, never errors.
func (p *Pusher) Summarize(ctx context.Context, ep *episode.Episode) *summary.Session {
	meta := summary.Meta{
		Timestamp: p.Now().UTC().Format(time.RFC3339),
		Version:   p.cfg.Version,
		UserID:    p.Identity.UserID(ctx),
	}

	if id, ok := p.Dataset.QuestionID(ctx, ep.ProblemID); ok {
		meta.QuestionID = &id
	} else {
		p.Log.Debug("question id unresolved", "problem_id", ep.ProblemID)
	}

	if ip, err := p.IP.PublicIP(ctx); err == nil {
		meta.IPAddr = &ip
	} else {
		p.Log.Debug("public ip unresolved", "error", err)
	}

	return summary.Build(ep, meta)
}

// Push summarizes ep and transmits the record. The kill switch is checked
// first; transmission failures are logged and swallowed. Telemetry never
// breaks the primary workflow, so Push has no error to return.
func (p *Pusher) Push(ctx context.Context, ep *episode.Episode) {
	if p.cfg.Disabled || config.TelemetryDisabledByEnv() {
		return
	}

	rec := p.Summarize(ctx, ep)
	if err := p.Reporter.Report(ctx, rec); err != nil {
		p.Log.Error("failed to push episode session", "episode_id", rec.EpisodeID, "error", err)
		return
	}
	p.Log.Info("pushed episode session", "episode_id", rec.EpisodeID, "success", rec.Success)
}
