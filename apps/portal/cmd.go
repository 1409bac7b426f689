package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/darasa/core/access"
	"github.com/trezcool/darasa/core/participant"
	"github.com/trezcool/darasa/core/roster"
	"github.com/trezcool/darasa/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in")
)

type commandLine struct {
	store     *session.Store
	guard     *access.Guard
	directory participant.Directory
	roster    *roster.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL -role ROLE - log in; the password will be prompted next")
	fmt.Println("  logout - discard the saved session")
	fmt.Println("  whoami - show the saved session")
	fmt.Println("  course -id ID - show a course")
	fmt.Println("  submissions -id ID - show a course's submissions, graded and ungraded")
	fmt.Println("  enroll -course ID -email EMAIL -role ROLE - enroll a registered participant")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The participant's email.")
	loginRole := loginCmd.String("role", "", "One of: faculty, ta, student.")

	courseCmd := flag.NewFlagSet("course", flag.ExitOnError)
	courseID := courseCmd.String("id", "", "The course id.")

	submissionsCmd := flag.NewFlagSet("submissions", flag.ExitOnError)
	submissionsID := submissionsCmd.String("id", "", "The course id.")

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	enrollCourse := enrollCmd.String("course", "", "The course id.")
	enrollEmail := enrollCmd.String("email", "", "The participant's email.")
	enrollRole := enrollCmd.String("role", "", "One of: ta, student.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" || *loginRole == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd), *loginRole)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "course":
		if err := courseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == "" {
			courseCmd.Usage()
			return errHelp
		}
		return cli.course(*courseID)
	case "submissions":
		if err := submissionsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *submissionsID == "" {
			submissionsCmd.Usage()
			return errHelp
		}
		return cli.submissions(*submissionsID)
	case "enroll":
		if err := enrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollCourse == "" || *enrollEmail == "" || *enrollRole == "" {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(*enrollCourse, *enrollEmail, *enrollRole)
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireSession restores the saved session and runs it through the gate.
func (cli *commandLine) requireSession(roles ...string) (session.Session, error) {
	if err := cli.store.Restore(); err != nil {
		return session.Session{}, err
	}
	sess := cli.store.Session()
	decision := cli.guard.Check(sess, roles...)
	switch decision.State {
	case access.Allow:
		return sess, nil
	case access.Redirect:
		if decision.Navigate {
			fmt.Printf("redirecting to %s\n", decision.Target)
		}
		return session.Session{}, errNotLoggedIn
	}
	return session.Session{}, errNotLoggedIn
}
