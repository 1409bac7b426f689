package main

import (
	"context"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/participant"
)

// register creates a participant.Participant for the given role.
func (cli *commandLine) register(name, email, role, pwd string) error {
	data := participant.NewParticipant{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: pwd,
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	participant.InitValidators(validate, translator)

	if err := data.Validate(validate); err != nil {
		return err
	}

	p, err := cli.directory.Register(context.Background(), data)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s) as %s\n", p.Name, p.ID, data.Role)
	return nil
}
