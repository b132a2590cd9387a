package model

// SeedUsers returns the initial directory content inserted into an empty
// database.
func SeedUsers() []User {
	return []User{
		{Name: "Egor", Age: 20, Email: "egor.ivanovBYM@gmail.com", Roles: []Role{
			{Name: RoleSuperAdmin},
			{Name: RoleSupport},
			{Name: RoleUser},
		}},
		{Name: "Artem", Age: 19, Email: "artem.kolyago@gmail.com", Roles: []Role{
			{Name: RoleUser},
		}},
		{Name: "Daniil", Age: 16, Email: "daniil.petrov@gmail.com", Roles: []Role{
			{Name: RoleAdmin},
		}},
		{Name: "Arsen", Age: 25, Email: "arsen.petrov@gmail.com", Roles: []Role{
			{Name: RoleSuperAdmin},
			{Name: RoleUser},
		}},
		{Name: "Vova", Age: 41, Email: "vova.petrov@gmail.com"},
	}
}
