package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/app"
	"github.com/cmlabs-hris/smart-attendance-go/internal/config"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
)

type options struct {
	cmd        string
	credential string
	date       string
	month      int
	year       int
	id         int64
	filter     string
	search     string
	page       int
	chatFile   string
	remarks    string
	out        string
}

func main() {
	var o options
	flag.StringVar(&o.cmd, "cmd", "dashboard", "Command: login|google|logout|me|watch|dashboard|attendance|process|employees|groups|holidays|leaves|approve|reject|summary|generate|export")
	flag.StringVar(&o.credential, "credential", "", "Google ID token (login)")
	flag.StringVar(&o.date, "date", "", "Attendance date YYYY-MM-DD, today when empty")
	flag.IntVar(&o.month, "month", 0, "Summary month, current month when 0")
	flag.IntVar(&o.year, "year", 0, "Summary year, current year when 0")
	flag.Int64Var(&o.id, "id", 0, "Record id (approve, reject)")
	flag.StringVar(&o.filter, "filter", "", "Named filter of the screen")
	flag.StringVar(&o.search, "search", "", "Search text")
	flag.IntVar(&o.page, "page", 1, "Page number")
	flag.StringVar(&o.chatFile, "chat", "", "WhatsApp chat export to process")
	flag.StringVar(&o.remarks, "remarks", "", "Admin remarks (approve, reject)")
	flag.StringVar(&o.out, "out", "", "Output file (export)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.App.Env, cfg.App.LogLevel)

	a, err := app.New(cfg, logger)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, a, o); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, o options) error {
	switch o.cmd {
	case "login":
		if o.credential == "" {
			return errors.New("-credential required")
		}
		u, err := a.Auth.LoginWithGoogle(ctx, o.credential)
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", u.Email, u.Role)
		warnIfEphemeral(a)
		return nil
	case "google":
		u, err := a.SignInWithGoogle(ctx, func(consentURL string) error {
			fmt.Println("Open this URL in your browser to sign in:")
			fmt.Println(consentURL)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", u.Email, u.Role)
		warnIfEphemeral(a)
		return nil
	case "logout":
		a.Auth.Logout()
		fmt.Println("Signed out")
		return nil
	}

	ok, err := a.Auth.Resume(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("not signed in, run -cmd login first")
	}

	if o.cmd == "me" {
		u, err := a.Auth.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> %s\n", u.Name, u.Email, u.Role)
		return nil
	}

	period := summary.CurrentPeriod(time.Now())
	if o.month != 0 {
		period.Month = o.month
	}
	if o.year != 0 {
		period.Year = o.year
	}

	if o.cmd == "watch" {
		return watch(ctx, a, app.WorkspaceOptions{Date: o.date, Period: period})
	}

	ws := a.Workspace(ctx, app.WorkspaceOptions{Date: o.date, Period: period, ManualLoad: true, PollInterval: -1})
	defer ws.Close()

	view := viewOptions{filter: o.filter, search: o.search, page: o.page}
	switch o.cmd {
	case "dashboard":
		return showDashboard(ctx, ws.Dashboard)
	case "attendance":
		return showAttendance(ctx, ws.Attendance, view)
	case "process":
		return processChat(ctx, ws.Attendance, o.chatFile, view)
	case "employees":
		return showEmployees(ctx, ws.Employees, view)
	case "groups":
		return showGroups(ctx, ws.Groups, view)
	case "holidays":
		return showHolidays(ctx, ws.Holidays, view)
	case "leaves":
		return showLeaves(ctx, ws.Leaves, view)
	case "approve", "reject":
		if o.id == 0 {
			return errors.New("-id required")
		}
		return reviewLeave(ctx, ws.Leaves, o.cmd, o.id, o.remarks)
	case "summary":
		return showSummary(ctx, ws.Summary, view)
	case "generate":
		return generateSummary(ctx, ws.Summary, view)
	case "export":
		out := o.out
		if out == "" {
			out = "attendance-summary-" + period.String() + ".xlsx"
		}
		return exportSummary(ctx, ws.Summary, out)
	}
	return fmt.Errorf("unknown command %q", o.cmd)
}

func warnIfEphemeral(a *app.App) {
	if a.Config.TokenStore.Path == "" {
		fmt.Println("TOKEN_STORE_PATH is not set; the session ends with this process")
	}
}

func idText(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
