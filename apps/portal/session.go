package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/session"
)

func (cli *commandLine) login(email, pwd, role string) error {
	if err := cli.store.Restore(); err != nil {
		return err
	}

	p, err := cli.directory.Authenticate(context.Background(), email, pwd, role)
	if err != nil {
		return err
	}

	identity := session.Identity{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  role,
	}
	if err = cli.store.Login(identity); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", identity.Name, identity.Role)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.store.Restore(); err != nil {
		return err
	}
	if err := cli.store.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	if err := cli.store.Restore(); err != nil {
		return err
	}
	sess := cli.store.Session()
	if !sess.LoggedIn() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", sess.Identity.Name, sess.Identity.Email, sess.Identity.Role)
	return nil
}
