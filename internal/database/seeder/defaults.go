package seeder

func Defaults() []Seeder {
	return []Seeder{
		SampleListingsSeeder{
			Email:    "demo@jobboard.com",
			Password: "demo123456",
			FullName: "Demo User",
		},
	}
}
