package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/keepsake-app/keepsake/pkg/cli/config"
	"github.com/keepsake-app/keepsake/pkg/service/worker"
	"github.com/keepsake-app/keepsake/pkg/utils/logging"
)

// cmdReconcile runs a single group reference scan and exits. Useful for
// cron-style operation instead of the in-process worker.
func cmdReconcile() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "reconcile",
		Usage: "Scan groups for references to deleted memories and report them",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			dangling, err := worker.Check(ctx, repo)
			if err != nil {
				return goerr.Wrap(err, "reconcile scan failed")
			}

			for _, ref := range dangling {
				logging.Default().Warn("group references a deleted memory",
					"groupId", ref.GroupID, "memoryId", ref.MemoryID)
			}
			logging.Default().Info("reconcile scan completed", "dangling", len(dangling))

			return nil
		},
	}
}
