package insights

import (
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/review"
)

type ReviewShowCmd struct {
	MarkSeen bool `help:"Clear the in-app reminder after showing the review." default:"true" negatable:""`
}

func (c *ReviewShowCmd) Run(ctx *cli.Context) error {
	latest, err := ctx.Store.GetLatestWeeklyReview()
	if err != nil {
		return fmt.Errorf("failed to load weekly review: %w", err)
	}
	fmt.Print(cli.RenderReview(latest))

	if latest != nil && latest.NeedsInAppNudge && c.MarkSeen {
		if err := review.NewService(ctx.Store, ctx.Clock).MarkSeen(latest.ID); err != nil {
			return fmt.Errorf("failed to mark review seen: %w", err)
		}
	}
	return nil
}

type ReviewRefreshCmd struct {
	Force bool `help:"Regenerate even when no new review is due."`
}

func (c *ReviewRefreshCmd) Run(ctx *cli.Context) error {
	result, err := review.NewService(ctx.Store, ctx.Clock).Refresh(c.Force)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case review.OutcomeCreated, review.OutcomeReplaced:
		fmt.Printf("✓ Weekly review generated for %s to %s\n", result.Review.StartDate, result.Review.EndDate)
	case review.OutcomeInsufficientData:
		fmt.Println("Not enough check-ins yet. A weekly review needs seven logged days.")
	case review.OutcomeUpToDate:
		if result.Review != nil {
			fmt.Printf("Weekly review for %s to %s is up to date.\n", result.Review.StartDate, result.Review.EndDate)
		} else {
			fmt.Println("No weekly review is due.")
		}
	}
	return nil
}

type ReviewSeenCmd struct {
	ID string `arg:"" optional:"" help:"Review ID. Defaults to the latest review."`
}

func (c *ReviewSeenCmd) Run(ctx *cli.Context) error {
	if err := review.NewService(ctx.Store, ctx.Clock).MarkSeen(c.ID); err != nil {
		return fmt.Errorf("failed to mark review seen: %w", err)
	}
	fmt.Println("✓ Weekly review marked as seen")
	return nil
}

type ReviewListCmd struct{}

func (c *ReviewListCmd) Run(ctx *cli.Context) error {
	reviews, err := ctx.Store.GetAllWeeklyReviews()
	if err != nil {
		return fmt.Errorf("failed to list weekly reviews: %w", err)
	}
	if len(reviews) == 0 {
		fmt.Println("No weekly reviews yet.")
		return nil
	}
	for _, r := range reviews {
		marker := " "
		if r.NeedsInAppNudge {
			marker = "*"
		}
		fmt.Printf("%s %s to %s  generated %s  %s\n", marker, r.StartDate, r.EndDate,
			r.GeneratedAt.Local().Format("2006-01-02 15:04"), r.ID)
	}
	return nil
}

type ReviewStatusCmd struct{}

func (c *ReviewStatusCmd) Run(ctx *cli.Context) error {
	status, err := review.NewService(ctx.Store, ctx.Clock).Status()
	if err != nil {
		return err
	}
	if banner := cli.RenderNudge(status); banner != "" {
		fmt.Println(banner)
	}
	switch {
	case status.Latest == nil:
		fmt.Println("No weekly review yet.")
	default:
		fmt.Printf("Latest review: %s to %s\n", status.Latest.StartDate, status.Latest.EndDate)
	}
	if status.Due {
		fmt.Println("A new review is due. Run 'chronorex review refresh'.")
	}
	return nil
}
