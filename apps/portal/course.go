package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	"github.com/trezcool/darasa/core/roster"
)

func (cli *commandLine) course(courseID string) error {
	sess, err := cli.requireSession()
	if err != nil {
		return err
	}

	snap, err := cli.roster.CourseSnapshot(context.Background(), courseID, *sess.Identity)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", snap.Name, snap.ID)
	fmt.Printf("  students: %d, TAs: %d, assignments: %d\n", len(snap.Students), len(snap.TAs), len(snap.Assignments))
	for _, a := range snap.Assignments {
		fmt.Printf("  - %s (due %s, %d marks)\n", a.Title, a.DueDate.Format("2006-01-02"), a.Marks)
	}
	return nil
}

func (cli *commandLine) submissions(courseID string) error {
	sess, err := cli.requireSession(participant.RoleFaculty, participant.RoleTA)
	if err != nil {
		return err
	}

	snap, err := cli.roster.CourseSnapshot(context.Background(), courseID, *sess.Identity)
	if err != nil {
		return err
	}

	tables := course.DeriveSubmissionTables(snap)
	fmt.Printf("graded (%d):\n", len(tables.Graded))
	for _, row := range tables.Graded {
		fmt.Printf("  %s - %s: %s (%d/%d)\n",
			row.AssignmentTitle, row.Student.Name, row.Grade.String, row.Marks.Int, row.MaxMarks)
	}
	fmt.Printf("ungraded (%d):\n", len(tables.Ungraded))
	for _, row := range tables.Ungraded {
		fmt.Printf("  %s - %s (submitted %s)\n",
			row.AssignmentTitle, row.Student.Name, row.SubmittedDate.Format("2006-01-02"))
	}
	return nil
}

func (cli *commandLine) enroll(courseID, email, role string) error {
	sess, err := cli.requireSession(participant.RoleFaculty)
	if err != nil {
		return err
	}

	// only the owning faculty may grow the roster
	if _, err = cli.roster.CourseSnapshot(context.Background(), courseID, *sess.Identity); err != nil {
		return err
	}

	if err = cli.roster.AddParticipant(context.Background(), courseID, email, role); err != nil {
		var perr *roster.PartialEnrollmentError
		if errors.As(err, &perr) {
			// the repair path only exists while this process is alive
			fmt.Printf("%s is attached to the course but their course list was not updated; retry now to repair, or reconcile with the admin tool\n", email)
		}
		return err
	}
	fmt.Printf("%s has been enrolled as %s\n", email, role)
	return nil
}
