package output

// DefaultAssumptions lists the rules behind every computation, rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Standard deduction: ₹50,000 under both regimes",
	"Old regime caps: Section 80C ₹1,50,000, Section 80D ₹25,000; other deductions uncapped",
	"New regime allows only the standard deduction",
	"Health and education cess: 4% of slab tax",
	"Slab rates do not vary with age category",
}
