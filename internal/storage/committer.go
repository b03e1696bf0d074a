package storage

import (
	"context"
	"fmt"

	"github.com/slok/tisk/internal/chain"
	"github.com/slok/tisk/internal/log"
)

// CommitterConfig is the configuration for the repository committer.
type CommitterConfig struct {
	Repository Repository
	Logger     log.Logger
}

func (c *CommitterConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Committer"})
	return nil
}

// Committer applies chain effects to a repository, one effect per
// repository call, so every effect is one atomic write at the storage
// boundary. It implements chain.Committer and never touches in-memory
// project state.
type Committer struct {
	repo   Repository
	logger log.Logger
}

// NewCommitter creates a new repository-backed committer.
func NewCommitter(cfg CommitterConfig) (*Committer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Committer{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Commit durably applies a single effect.
func (c *Committer) Commit(ctx context.Context, e chain.Effect) (chain.CommitResult, error) {
	var err error
	switch effect := e.(type) {
	case chain.Write:
		err = c.repo.SaveTask(ctx, effect.Task)
	case chain.Checkout:
		err = c.repo.SetCheckout(ctx, effect.TaskID)
	case chain.CheckIn:
		err = c.repo.ClearCheckout(ctx)
	case chain.Close:
		err = c.repo.CloseTask(ctx, effect.TaskID)
	case chain.AddNote:
		err = c.repo.AppendNote(ctx, effect.TaskID, effect.Note)
	case chain.NoOp:
		// Explicit no durable change.
	default:
		return chain.CommitResult{}, fmt.Errorf("unknown effect type %T", e)
	}
	if err != nil {
		return chain.CommitResult{}, fmt.Errorf("could not commit %s: %w", e, err)
	}

	c.logger.Debugf("committed %s", e)
	return chain.CommitResult{Effect: e}, nil
}
