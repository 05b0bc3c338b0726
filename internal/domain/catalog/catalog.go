package catalog

import "freelance-match/internal/domain/marketplace"

const PlaceholderAvatar = "https://via.placeholder.com/150"

var technologies = []marketplace.Technology{
	{ID: "1", Name: "React"},
	{ID: "2", Name: "Node.js"},
	{ID: "3", Name: "Python"},
	{ID: "4", Name: "TypeScript"},
	{ID: "5", Name: "MongoDB"},
	{ID: "6", Name: "PostgreSQL"},
	{ID: "7", Name: "Next.js"},
	{ID: "8", Name: "Vue.js"},
	{ID: "9", Name: "Django"},
	{ID: "10", Name: "AWS"},
	{ID: "11", Name: "Docker"},
	{ID: "12", Name: "GraphQL"},
}

// Technologies returns a copy of the catalog in display order.
func Technologies() []marketplace.Technology {
	return append([]marketplace.Technology(nil), technologies...)
}

func Names() []string {
	out := make([]string, 0, len(technologies))
	for _, t := range technologies {
		out = append(out, t.Name)
	}
	return out
}

// Contains reports catalog membership. Matching never calls this.
func Contains(name string) bool {
	for _, t := range technologies {
		if t.Name == name {
			return true
		}
	}
	return false
}

var demoFreelancers = []marketplace.Freelancer{
	{
		ID:           "1",
		Name:         "Ankita",
		Email:        "sarah.j@example.com",
		Title:        "Full Stack Developer",
		Technologies: []string{"React", "Node.js", "TypeScript", "MongoDB"},
		HourlyRate:   85,
		Experience:   5,
		Avatar:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=150&h=150&fit=crop",
	},
	{
		ID:           "2",
		Name:         "Raj",
		Email:        "mchen@example.com",
		Title:        "Backend Specialist",
		Technologies: []string{"Python", "Django", "PostgreSQL", "AWS"},
		HourlyRate:   95,
		Experience:   7,
		Avatar:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop",
	},
	{
		ID:           "3",
		Name:         "Shyamala",
		Email:        "emily.r@example.com",
		Title:        "React Developer",
		Technologies: []string{"React", "Next.js", "TypeScript", "GraphQL"},
		HourlyRate:   80,
		Experience:   4,
		Avatar:       "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop",
	},
	{
		ID:           "4",
		Name:         "Akhil",
		Email:        "david.kim@example.com",
		Title:        "DevOps Engineer",
		Technologies: []string{"AWS", "Docker", "Node.js", "Python"},
		HourlyRate:   100,
		Experience:   6,
		Avatar:       "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop",
	},
	{
		ID:           "5",
		Name:         "Shreyank",
		Email:        "lisa.a@example.com",
		Title:        "Frontend Developer",
		Technologies: []string{"Vue.js", "TypeScript", "GraphQL"},
		HourlyRate:   75,
		Experience:   3,
		Avatar:       "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?w=150&h=150&fit=crop",
	},
	{
		ID:           "6",
		Name:         "Saurabh",
		Email:        "jwilson@example.com",
		Title:        "Full Stack Engineer",
		Technologies: []string{"React", "Node.js", "PostgreSQL", "Docker"},
		HourlyRate:   90,
		Experience:   5,
		Avatar:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop",
	},
}

// DemoFreelancers returns deep copies of the built-in freelancer pool.
func DemoFreelancers() []marketplace.Freelancer {
	out := make([]marketplace.Freelancer, 0, len(demoFreelancers))
	for _, f := range demoFreelancers {
		out = append(out, f.Clone())
	}
	return out
}
