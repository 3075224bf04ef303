package main

import (
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

// addUser creates a user, or refreshes an existing one's password and roles.
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	var roles []string
	if isAdmin {
		roles = user.AllRoles
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(user.NewUser{
			Name:            uname,
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
			Roles:           roles,
		})
		return err
	}

	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            usr.Name,
		Username:        uname,
		Email:           email,
		Roles:           roles,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
