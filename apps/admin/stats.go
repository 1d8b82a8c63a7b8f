package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/littleheartschool/backend/core/admission"
)

func (cli *commandLine) stats() error {
	stats, err := cli.svc.Stats(context.Background())
	if err != nil {
		return err
	}

	color.Yellow("\nAdmissions Dashboard")

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"Status", "Count"})
	for _, status := range admission.Statuses {
		table.Append([]string{string(status), fmt.Sprintf("%d", stats.ByStatus[status])})
	}
	table.Render()

	fmt.Fprintf(cli.out, "Total applications : %d\n", stats.Total)
	fmt.Fprintf(cli.out, "Applied today      : %d\n", stats.Today)
	fmt.Fprintf(cli.out, "Approval rate      : %.1f%%\n", stats.ApprovalRate*100)
	return nil
}

func (cli *commandLine) list(filter admission.QueryFilter) error {
	ctx := context.Background()

	var apps []admission.Application
	var err error
	if filter.IsEmpty() {
		apps, err = cli.svc.QueryAll(ctx)
	} else {
		apps, err = cli.svc.Filter(ctx, filter)
	}
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"Reference", "Student", "Class", "Status", "Priority", "Paid", "Applied"})
	for _, app := range apps {
		paid := "no"
		if app.IsPaid {
			paid = "yes"
		}
		table.Append([]string{
			app.ReferenceCode,
			app.StudentName,
			app.ApplyingForClass,
			string(app.Status),
			string(app.Priority),
			paid,
			app.AppliedAt.UTC().Format("2006-01-02"),
		})
	}
	table.Render()

	fmt.Fprintf(cli.out, "%d application(s)\n", len(apps))
	return nil
}
