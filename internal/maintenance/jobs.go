package maintenance

import (
	"context"
	"log"
	"time"

	"campuschat/internal/stores/auditlog"
	"campuschat/internal/stores/session"

	"github.com/robfig/cron/v3"
)

// Sessions idle for longer than this are marked inactive
const idleCutoff = 24 * time.Hour

// Jobs runs scheduled maintenance: stale-session cleanup and daily usage
// summaries into the logging database
type Jobs struct {
	cron     *cron.Cron
	sessions *session.Store
	logs     *auditlog.Store
}

// New creates the maintenance scheduler. The log store may be nil when no
// logging database is configured; the summary job is skipped in that case.
func New(sessions *session.Store, logs *auditlog.Store) *Jobs {
	return &Jobs{
		cron:     cron.New(),
		sessions: sessions,
		logs:     logs,
	}
}

// Start registers the jobs and starts the scheduler
func (j *Jobs) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.deactivateIdleSessions); err != nil {
		return err
	}

	if j.logs != nil {
		// Summarize the previous day shortly after midnight UTC
		if _, err := j.cron.AddFunc("5 0 * * *", j.writeDailySummary); err != nil {
			return err
		}
	}

	j.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for running jobs
func (j *Jobs) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Jobs) deactivateIdleSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	affected, err := j.sessions.DeactivateIdleSessions(ctx, time.Now().UTC().Add(-idleCutoff))
	if err != nil {
		log.Printf("[MAINTENANCE]: Failed to deactivate idle sessions: %v", err)
		return
	}

	if affected > 0 {
		log.Printf("[MAINTENANCE]: Deactivated %d idle sessions", affected)
	}
}

func (j *Jobs) writeDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	stats, err := j.sessions.GetStatsForDay(ctx, yesterday)
	if err != nil {
		log.Printf("[MAINTENANCE]: Failed to compute stats for summary: %v", err)
		return
	}

	_, errored, err := j.logs.CountInteractionsBetween(ctx, yesterday, yesterday.Add(24*time.Hour))
	if err != nil {
		log.Printf("[MAINTENANCE]: Failed to count interactions for summary: %v", err)
		return
	}

	summary := &auditlog.DailySummary{
		Date:         yesterday.Format("2006-01-02"),
		Sessions:     stats.Sessions,
		UserMessages: stats.UserMessages,
		BotMessages:  stats.BotMessages,
		Errors:       errored,
	}

	if err := j.logs.SaveSummary(ctx, summary); err != nil {
		log.Printf("[MAINTENANCE]: Failed to save daily summary: %v", err)
		return
	}

	log.Printf("[MAINTENANCE]: Wrote daily summary for %s", summary.Date)
}
