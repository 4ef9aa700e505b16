package repo

import (
	commissionrepo "github.com/makremffff/index.html-bota/internal/repo/commission-repo"
	taskrepo "github.com/makremffff/index.html-bota/internal/repo/task-repo"
	tokenrepo "github.com/makremffff/index.html-bota/internal/repo/token-repo"
	userrepo "github.com/makremffff/index.html-bota/internal/repo/user-repo"
	withdrawalrepo "github.com/makremffff/index.html-bota/internal/repo/withdrawal-repo"
	"github.com/makremffff/index.html-bota/internal/store"
)

type Repositories struct {
	UserRepo       *userrepo.Repository
	TokenRepo      *tokenrepo.Repository
	TaskRepo       *taskrepo.Repository
	WithdrawalRepo *withdrawalrepo.Repository
	CommissionRepo *commissionrepo.Repository
}

func New(db store.Client) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(db),
		TokenRepo:      tokenrepo.New(db),
		TaskRepo:       taskrepo.New(db),
		WithdrawalRepo: withdrawalrepo.New(db),
		CommissionRepo: commissionrepo.New(db),
	}
}
