package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/master-calendar/internal/printers"
	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/internal/workflow"
	"github.com/username/master-calendar/pkg/dateutil"
)

func holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage holidays",
	}

	cmd.AddCommand(holidayListCmd())
	cmd.AddCommand(holidaySetCmd())
	cmd.AddCommand(holidayDeleteCmd())

	return cmd
}

func holidayListCmd() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				logger.Warn("Token resolution failed, loading anonymously", zap.Error(err))
			}
			coord.Load(ctx, token)

			pp := &printers.PrettyPrint{ShowID: showIDs}
			pp.Title("Holidays")
			pp.Holidays(coord.Holidays())

			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Include record ids")

	return cmd
}

func holidaySetCmd() *cobra.Command {
	var dateStr string
	var name string
	var holidayType string
	var description string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the holiday on a date",
		Long:  "Creates a holiday on the given date, or updates the existing one. Dependent schedules are recomputed afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve token: %w", err)
			}

			coord.Load(ctx, token)
			coord.Panel().SelectDate(date, coord.Holidays())

			form := workflow.HolidayForm{
				Name:        name,
				Date:        date,
				HolidayType: holidayType,
				Description: description,
			}
			if existing := coord.Panel().SelectedHoliday(); existing != nil {
				if name == "" {
					form.Name = existing.Name
				}
				if !cmd.Flags().Changed("type") {
					form.HolidayType = existing.HolidayType
				}
				if !cmd.Flags().Changed("description") {
					form.Description = existing.Description
				}
			}

			if err := coord.SaveHoliday(ctx, token, form); err != nil {
				return fmt.Errorf("%s", workflow.UserMessage("save holiday", err))
			}

			fmt.Printf("Holiday %q set on %s\n", form.Name, dateutil.FormatISO(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Holiday date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().StringVar(&holidayType, "type", store.HolidayTypeRegular, "Holiday type: regular or special")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func holidayDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a holiday by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve token: %w", err)
			}

			coord.Load(ctx, token)
			if err := coord.DeleteHoliday(ctx, token, store.FlexibleID(args[0])); err != nil {
				return fmt.Errorf("%s", workflow.UserMessage("delete holiday", err))
			}

			fmt.Printf("Holiday %s deleted\n", args[0])
			return nil
		},
	}

	return cmd
}

func periodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage payroll periods",
	}

	cmd.AddCommand(periodListCmd())
	cmd.AddCommand(periodSetCmd())
	cmd.AddCommand(periodDeleteCmd())

	return cmd
}

func periodListCmd() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payroll periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				logger.Warn("Token resolution failed, loading anonymously", zap.Error(err))
			}
			coord.Load(ctx, token)

			pp := &printers.PrettyPrint{ShowID: showIDs}
			pp.Title("Payroll periods")
			pp.Periods(coord.Periods())

			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Include record ids")

	return cmd
}

func periodSetCmd() *cobra.Command {
	var startStr string
	var endStr string
	var id string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a payroll period",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			end, err := dateutil.ParseDate(endStr)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}

			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve token: %w", err)
			}

			coord.Load(ctx, token)
			if id != "" {
				found := false
				periods := coord.Periods()
				for i := range periods {
					if periods[i].ID.String() == id {
						coord.Panel().SelectPayrollPeriod(&periods[i])
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("payroll period %s not found", id)
				}
			}

			form := workflow.PeriodForm{
				Start: start,
				End:   end,
			}
			if err := coord.SavePayrollPeriod(ctx, token, form); err != nil {
				return fmt.Errorf("%s", workflow.UserMessage("save payroll dates", err))
			}

			fmt.Printf("Payroll period set: %s .. %s\n", dateutil.FormatISO(start), dateutil.FormatISO(end))
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "Period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&id, "id", "", "Existing period id to update")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func periodDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payroll period by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve token: %w", err)
			}

			coord.Load(ctx, token)
			if err := coord.DeletePayrollPeriod(ctx, token, store.FlexibleID(args[0])); err != nil {
				return fmt.Errorf("%s", workflow.UserMessage("delete payroll dates", err))
			}

			fmt.Printf("Payroll period %s deleted\n", args[0])
			return nil
		},
	}

	return cmd
}
