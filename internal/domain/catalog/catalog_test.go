package catalog

import "testing"

func TestTechnologies_ReturnsCopy(t *testing.T) {
	a := Technologies()
	a[0].Name = "Changed"

	if Technologies()[0].Name != "React" {
		t.Fatalf("expected catalog to be immutable")
	}
	if len(Names()) != 12 {
		t.Fatalf("expected 12 technologies, got %d", len(Names()))
	}
}

func TestDemoFreelancers_UseCatalogTechnologies(t *testing.T) {
	for _, f := range DemoFreelancers() {
		for _, tech := range f.Technologies {
			if !Contains(tech) {
				t.Fatalf("freelancer %s uses %q outside the catalog", f.ID, tech)
			}
		}
	}

	a := DemoFreelancers()
	a[0].Technologies[0] = "Changed"
	if DemoFreelancers()[0].Technologies[0] != "React" {
		t.Fatalf("expected demo pool to be returned as copies")
	}
}
