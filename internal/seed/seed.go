// Package seed holds the content bundled into the binary. The public page
// shows it whenever the store has no rows for a collection.
package seed

import "github.com/Zachkp/portfolio/internal/domain"

var (
	Headline = `Results-driven Product & Business Leader bridging technical fluency with executive leadership.`

	// Skills are the stack highlights shown under the hero.
	Skills = []Skill{
		{Area: "Design", Items: []string{"Figma", "Illustrator", "Blender"}},
		{Area: "Leadership", Items: []string{"COO", "Agile", "Roadmap Management"}},
		{Area: "Dev", Items: []string{"Responsive Design", "Spatial UI"}},
		{Area: "Focus", Items: []string{"GIS", "Fintech", "Government"}},
	}
)

// Skill is one cell of the skills grid.
type Skill struct {
	Area  string
	Items []string
}

var projects = []domain.Project{
	{
		Title:       "GebetaMaps",
		Role:        "Chief Operations Officer",
		Description: "A geospatial API platform for Africa featuring multi-theme tile rendering and real-time monitoring.",
		Tags:        []string{"Figma", "Tailwind CSS", "GIS"},
		Details: []string{
			"Led the operational rollout of a mapping platform serving governments, logistics operators, and enterprises across multiple regions.",
			"Worked closely with engineers and designers to balance performance, cartographic clarity, and product constraints.",
			"Introduced feedback loops with key customers to continuously refine data quality, coverage, and feature priorities.",
		},
	},
	{
		Title:       "Gebeta Food",
		Role:        "Full Stack Lead",
		Description: "Complete food and drinks ordering platform with responsive web and app interfaces.",
		Tags:        []string{"Full Stack", "Product Design", "Marketing"},
		Details: []string{
			"Designed and shipped a full ordering flow that worked reliably across different bandwidth conditions and devices.",
			"Coordinated between product, engineering, and marketing to align promotions, UX flows, and onboarding.",
			"Oversaw the creation of dashboards and operational tools for vendors and internal teams.",
		},
	},
	{
		Title:       "Nor Advertising",
		Role:        "UI/UX Designer",
		Description: "An all-in-one advertising solution where consumers earn cash for engagement.",
		Tags:        []string{"Figma", "UX Design", "Responsive"},
		Details: []string{
			"Created UX flows that balanced advertiser goals with an intuitive, low-friction experience for end users.",
			"Developed responsive layouts and design systems that scaled across campaigns and channels.",
			"Collaborated with stakeholders to translate complex business rules into clear interfaces.",
		},
	},
	{
		Title:       "Public Sector (Ethiopost/NID)",
		Role:        "Product Lead",
		Description: "Designed websites and applications for mainstream national government projects.",
		Tags:        []string{"Government", "Scale", "UI/UX"},
		Details: []string{
			"Worked with government partners to scope, prioritize, and deliver citizen-facing digital services.",
			"Balanced compliance, accessibility, and performance in environments with diverse device and connectivity constraints.",
			"Aligned internal teams and external vendors around a shared roadmap and delivery milestones.",
		},
	},
}

var experiences = []domain.Experience{
	{
		Company: "Gebeta Maps",
		Role:    "Co-founder & COO",
		Period:  "2020 — Present",
		Summary: "Leading product and operations for a geo-intelligence startup serving governments and enterprises.",
		Highlights: []string{
			"Scaled operations across multiple regions with lean, data-driven processes.",
			"Directed cross-functional teams from discovery to launch for mission-critical products.",
		},
		Details: []string{
			"Built and led cross-functional teams across product, engineering, operations, and partnerships to deliver mapping and geo-intelligence tools tailored for African markets.",
			"Established operating rhythms, KPIs, and feedback loops that tightened the connection between on-the-ground users, product roadmap, and executive decisions.",
			"Negotiated and managed strategic partnerships with public sector and enterprise clients, aligning complex stakeholder needs into a coherent product strategy.",
			"Oversaw delivery of spatial products used for infrastructure planning, logistics, and government services with a strong emphasis on reliability and UX.",
		},
	},
	{
		Company: "Product & Strategy Consulting",
		Role:    "Independent",
		Period:  "2017 — 2020",
		Summary: "Partnered with fintech and public sector teams to bring complex products from idea to market.",
		Highlights: []string{
			"Defined roadmaps and go-to-market for multi-stakeholder digital platforms.",
			"Advised leaders on prioritization, risk, and portfolio alignment.",
		},
		Details: []string{
			"Worked with founders and executives to clarify product vision, shape narratives, and translate strategy into actionable delivery plans.",
			"Designed research and discovery processes that surfaced real user constraints in emerging markets, informing everything from onboarding to pricing.",
			"Guided teams through prioritization frameworks that balanced regulatory, technical, and commercial constraints.",
			"Helped organizations mature their product practice: rituals, documentation, and decision-making models that survive beyond a single project.",
		},
	},
}

// Projects returns a copy of the bundled projects.
func Projects() []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		p.Tags = clone(p.Tags)
		p.Details = clone(p.Details)
		out[i] = p
	}
	return out
}

// Experiences returns a copy of the bundled work history.
func Experiences() []domain.Experience {
	out := make([]domain.Experience, len(experiences))
	for i, e := range experiences {
		e.Highlights = clone(e.Highlights)
		e.Details = clone(e.Details)
		out[i] = e
	}
	return out
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
