package main

import (
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
