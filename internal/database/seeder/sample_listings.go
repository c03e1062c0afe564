package seeder

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SampleListingsSeeder creates (or reuses) a demo user and posts the sample
// listings as that user. Listings already present for the same owner, title
// and company are skipped, so it can run repeatedly.
type SampleListingsSeeder struct {
	Email    string
	Password string
	FullName string

	// HashCost overrides the bcrypt cost; zero means the default.
	HashCost int
}

func (SampleListingsSeeder) Name() string { return "sample_listings" }

func (s SampleListingsSeeder) Run(ctx context.Context, t Target) error {
	owner, err := s.ensureUser(ctx, t.Users)
	if err != nil {
		return err
	}

	existing, err := t.Listings.Select(ctx, listing.ByOwner(owner), 0)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		have[seedKey(l.Title, l.Company)] = struct{}{}
	}

	for _, f := range SampleListings() {
		if _, ok := have[seedKey(f.Title, f.Company)]; ok {
			continue
		}
		if err := listing.Validate(f); err != nil {
			return err
		}
		if _, err := t.Listings.Insert(ctx, owner, f); err != nil {
			return err
		}
	}
	return nil
}

func (s SampleListingsSeeder) ensureUser(ctx context.Context, users user.Repository) (uuid.UUID, error) {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return uuid.Nil, err
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
	if err != nil {
		return uuid.Nil, err
	}

	u = user.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	if s.FullName != "" {
		name := s.FullName
		u.FullName = &name
	}
	if err := users.Create(ctx, u); err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

func seedKey(title, company string) string {
	return title + "\x00" + company
}

func SampleListings() []listing.Fields {
	return []listing.Fields{
		{
			Title:       "Senior Frontend Developer",
			Company:     "TechCorp Inc.",
			Location:    "San Francisco, CA",
			Category:    listing.CategoryFullTime,
			Description: "Build and maintain our customer-facing web applications with React and Next.js. You will work with design and backend teams, review code and mentor junior developers. 5+ years of frontend experience expected.",
		},
		{
			Title:       "Data Scientist",
			Company:     "DataFlow Analytics",
			Location:    "Remote",
			Category:    listing.CategoryFullTime,
			Description: "Build and deploy machine learning models, analyze large datasets and present findings to stakeholders. Python, SQL and experience with a major cloud platform required. Remote-first team with flexible hours.",
		},
		{
			Title:       "Product Manager",
			Company:     "InnovateLab",
			Location:    "New York, NY",
			Category:    listing.CategoryFullTime,
			Description: "Own the vision and roadmap of our digital products. Work with engineering, design and marketing, run market research and lead launches. 4+ years of product management with agile teams.",
		},
		{
			Title:       "DevOps Engineer",
			Company:     "CloudScale Solutions",
			Location:    "Austin, TX",
			Category:    listing.CategoryFullTime,
			Description: "Design CI/CD pipelines and run our cloud infrastructure. Docker, Kubernetes and Terraform are daily tools; you will automate deployments and keep systems reliable. Hybrid work model.",
		},
		{
			Title:       "UX/UI Designer",
			Company:     "DesignStudio Pro",
			Location:    "Los Angeles, CA",
			Category:    listing.CategoryContract,
			Description: "Six-month contract designing web and mobile experiences for our clients. Research, wireframes, prototypes and high-fidelity mockups in Figma. Portfolio required, remote options available.",
		},
		{
			Title:       "Backend Developer",
			Company:     "ServerTech Corp",
			Location:    "Seattle, WA",
			Category:    listing.CategoryFullTime,
			Description: "Develop RESTful APIs and services, design database schemas and tune queries. Experience with PostgreSQL and containerized deployments expected. 4+ years of backend development.",
		},
		{
			Title:       "Marketing Coordinator",
			Company:     "GrowthHackers Inc.",
			Location:    "Chicago, IL",
			Category:    listing.CategoryPartTime,
			Description: "Part-time role, 20-25 hours per week. Support social media, email campaigns and events, and report on marketing metrics. 1-2 years of marketing experience and strong writing skills.",
		},
		{
			Title:       "Mobile App Developer",
			Company:     "MobileFirst Technologies",
			Location:    "Remote",
			Category:    listing.CategoryContract,
			Description: "Three-month contract building cross-platform iOS and Android apps with React Native. Integrate backend APIs, tune performance and ship to both app stores. Fully remote.",
		},
		{
			Title:       "Cybersecurity Analyst",
			Company:     "SecureNet Systems",
			Location:    "Washington, DC",
			Category:    listing.CategoryFullTime,
			Description: "Monitor security systems, investigate threats and run vulnerability assessments. Familiarity with NIST or ISO 27001 and SIEM tooling; CISSP or CEH preferred. 2+ years of experience.",
		},
		{
			Title:       "Content Writer",
			Company:     "ContentCrafters Agency",
			Location:    "Remote",
			Category:    listing.CategoryPartTime,
			Description: "Write blog posts, web copy and newsletters for a range of clients, 15-20 hours per week. SEO and keyword research experience plus a portfolio of published work required.",
		},
	}
}
