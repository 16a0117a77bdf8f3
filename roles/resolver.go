package roles

import (
	"dealership-api/config"
	"dealership-api/models"
)

// PriorityTable maps application roles to guild role IDs, evaluated
// highest privilege first. Entries with an empty ID are skipped.
type PriorityTable struct {
	OwnerID    string
	ManagerID  string
	CustomerID string
}

// TableFromConfig builds the priority table from the configured
// per-role guild role IDs.
func TableFromConfig(cfg *config.Config) PriorityTable {
	return PriorityTable{
		OwnerID:    cfg.RoleOwnerID,
		ManagerID:  cfg.RoleManagerID,
		CustomerID: cfg.RoleCustomerID,
	}
}

// Empty reports whether no role mapping is configured at all.
func (t PriorityTable) Empty() bool {
	return t.OwnerID == "" && t.ManagerID == "" && t.CustomerID == ""
}

// Resolve maps the member's guild role IDs to a single application role.
//
// Evaluation walks a fixed priority order (owner, manager, customer), so a
// member holding both the owner and manager roles always resolves to owner
// no matter how the provider enumerated the set. A member with guild roles
// that match nothing configured is a plain member; a member with no guild
// roles at all is a guest. With no mapping configured the resolver falls
// back to customer, keeping least privilege until roles are set up.
func Resolve(memberRoleIDs []string, table PriorityTable) models.Role {
	if table.Empty() {
		return models.RoleCustomer
	}

	held := make(map[string]bool, len(memberRoleIDs))
	for _, id := range memberRoleIDs {
		held[id] = true
	}

	ranked := []struct {
		guildRoleID string
		role        models.Role
	}{
		{table.OwnerID, models.RoleOwner},
		{table.ManagerID, models.RoleManager},
		{table.CustomerID, models.RoleCustomer},
	}
	for _, r := range ranked {
		if r.guildRoleID != "" && held[r.guildRoleID] {
			return r.role
		}
	}

	if len(memberRoleIDs) > 0 {
		return models.RoleMember
	}
	return models.RoleGuest
}
