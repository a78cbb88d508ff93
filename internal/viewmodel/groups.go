package viewmodel

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

var groupGrant = user.Grant{
	Create: user.PermissionGroupManage,
	Update: user.PermissionGroupManage,
	Delete: user.PermissionGroupManage,
}

type Groups struct {
	*viewstate.Controller[group.Group, group.Query]
}

func NewGroups(gw viewstate.Gateway[group.Group, group.Query], deps Deps) *Groups {
	return &Groups{
		Controller: viewstate.NewController(viewstate.Config[group.Group, group.Query]{
			Resource: "groups",
			Gateway:  gw,
			IDOf:     group.Group.Key,
			AutoLoad: deps.AutoLoad,
			Filters:  activeFilters(group.Group.Active),
			Search: func(g group.Group, needle string) bool {
				return viewstate.ContainsFold(needle, g.Name, g.WhatsappGroupName)
			},
			Less: func(a, b group.Group) bool {
				return lessFold(a.Name, b.Name)
			},
			Capabilities: deps.capabilities(groupGrant),
			Messages:     crudMessages("Group"),
			Session:      deps.Session,
			Logger:       deps.Logger,
		}),
	}
}

func (g *Groups) Add(ctx context.Context, req group.SaveRequest) (viewstate.Outcome, error) {
	return g.Create(ctx, &req)
}

func (g *Groups) Edit(ctx context.Context, id int64, req group.SaveRequest) (viewstate.Outcome, error) {
	return g.Update(ctx, id, &req)
}

func (g *Groups) Remove(ctx context.Context, id int64) (viewstate.Outcome, error) {
	return g.Delete(ctx, id)
}
