package classify

import "strings"

// Rule ordering is behaviorally significant throughout this file: within a
// list the first matching entry decides the reported reason, and across the
// exclusion tables the first firing rule ends classification.

// frameworkIndicators are generic phrases that mark a notice as a
// multi-supplier procurement vehicle rather than a direct opportunity.
var frameworkIndicators = []string{
	"framework agreement",
	"dynamic purchasing system",
	"pseudo framework",
	"multi-supplier",
	"multi supplier",
	"call-off contract",
	"call off contract",
	"framework for the provision",
	"purchasing system for",
}

// namedFrameworks are known national procurement frameworks and their
// operators. Checked after the generic indicators.
var namedFrameworks = []string{
	"nhs workforce alliance",
	"crown commercial service",
	"healthtrust europe",
	"nhs shared business services",
	"noe cpc",
	"north of england commercial procurement",
	"london procurement partnership",
	"nhs commercial solutions",
}

// ExclusionRule discards a notice when any trigger keyword is present and,
// if a context set is given, any context keyword is present too. An empty
// context makes the rule unconditional.
type ExclusionRule struct {
	Name     string
	Triggers []string
	Context  []string
}

// Fires reports whether the rule matches the lower-cased notice text, and
// returns the trigger keyword that hit.
func (r ExclusionRule) Fires(text string) (string, bool) {
	trigger, ok := containsAny(text, r.Triggers)
	if !ok {
		return "", false
	}
	if len(r.Context) > 0 {
		if _, ok := containsAny(text, r.Context); !ok {
			return "", false
		}
	}
	return trigger, true
}

// nonHealthcareRules exclude notices from sectors that cannot be clinical
// staffing or service delivery work. First firing rule wins.
var nonHealthcareRules = []ExclusionRule{
	{
		Name:     "grounds and gardens",
		Triggers: []string{"grounds maintenance", "landscaping", "arboricultural"},
		Context:  []string{"grass cutting", "hedge", "tree works", "winter gritting", "planting"},
	},
	{
		Name:     "highways and transport",
		Triggers: []string{"highway maintenance", "road resurfacing", "bus services", "traffic management", "gritting"},
	},
	{
		Name:     "waste and recycling",
		Triggers: []string{"household waste", "waste collection", "recycling services", "refuse"},
	},
	{
		Name:     "housing",
		Triggers: []string{"housing repairs", "social housing", "homelessness", "temporary accommodation"},
	},
	{
		Name:     "schools",
		Triggers: []string{"school meals", "primary school", "secondary school", "school transport"},
	},
	{
		Name:     "defence and justice",
		Triggers: []string{"ministry of defence", "custodial services", "probation services", "prison"},
	},
	{
		Name:     "energy and utilities",
		Triggers: []string{"electricity supply", "gas supply", "street lighting", "water treatment"},
	},
	{
		Name:     "insurance and legal",
		Triggers: []string{"insurance services", "legal services", "barrister", "solicitor"},
	},
	{
		Name:     "leisure and culture",
		Triggers: []string{"leisure centre", "library services", "museum", "sports pitches"},
	},
	{
		Name:     "pest control",
		Triggers: []string{"pest control"},
		Context:  []string{"rodent", "infestation", "fumigation"},
	},
	{
		Name:     "security guarding",
		Triggers: []string{"security guarding", "manned guarding", "cctv monitoring"},
	},
	{
		Name:     "non-clinical cleaning",
		Triggers: []string{"cleaning services", "window cleaning"},
		Context:  []string{"office", "school", "depot", "civic"},
	},
}

// coreKeywords directly indicate insourced clinical staffing or service
// delivery. A hit marks the notice relevant at confidence 95.
var coreKeywords = []string{
	"insourcing",
	"insourced",
	"locum",
	"agency staff",
	"medical staffing",
	"clinical staffing",
	"nurse staffing",
	"bank staff",
	"staffing services",
	"temporary staffing",
}

// mediumKeywords are clinical service terms that make a notice relevant at
// confidence 80 when no core keyword is present.
var mediumKeywords = []string{
	"endoscopy",
	"outpatient",
	"elective care",
	"waiting list",
	"diagnostic imaging",
	"radiology",
	"ophthalmology",
	"dermatology",
	"theatre lists",
	"clinical services",
	"surgical services",
	"community health services",
	"mental health services",
	"patient care",
}

// cpvHealthPrefix is the CPV division for health services. Any listed code
// starting with it marks the notice relevant at confidence 70.
const cpvHealthPrefix = "85"

// nonStaffingCategories is the second exclusion pass: notices that are about
// a provider's needs but not about clinical staffing or service delivery.
// Evaluated in order; first category with any keyword hit wins. Some entries
// deliberately use broad substrings (" system", " solution") and can
// false-positive against clinical system names; the bias is toward keeping
// noise out of the review queue.
var nonStaffingCategories = []ExclusionRule{
	{
		Name:     "equipment and devices",
		Triggers: []string{"supply of equipment", "medical devices", "supply and delivery", "defibrillator", "patient monitors", "hospital beds"},
	},
	{
		Name:     "vehicles and fleet",
		Triggers: []string{"vehicle", "fleet", "minibus", "ambulances for purchase"},
	},
	{
		Name:     "facilities management",
		Triggers: []string{"facilities management", "hard fm", "soft fm", "catering services", "laundry services", "portering"},
	},
	{
		Name:     "it hardware",
		Triggers: []string{"laptops", "desktop computers", "servers", "network infrastructure", "wi-fi", "telephony"},
	},
	{
		Name:     "construction and works",
		Triggers: []string{"construction", "refurbishment", "building works", "new build", "demolition"},
	},
	{
		Name:     "general supplies",
		Triggers: []string{"stationery", "furniture", "uniforms", "consumables supply", "office supplies"},
	},
	{
		Name:     "software and systems",
		Triggers: []string{"software", " system", " solution", "digital platform", "licence renewal"},
	},
	{
		Name:     "fire safety",
		Triggers: []string{"fire safety", "fire alarm", "fire risk assessment", "fire doors"},
	},
	{
		Name:     "payroll and financial",
		Triggers: []string{"payroll", "accountancy", "audit services", "financial services", "pension administration"},
	},
	{
		Name:     "alternative therapies",
		Triggers: []string{"acupuncture", "hypnotherapy", "reflexology", "aromatherapy", "homeopathy"},
	},
	{
		Name:     "training and education",
		Triggers: []string{"training courses", "apprenticeship", "e-learning", "education programme", "training provider"},
	},
	{
		Name:     "rental maintenance and support",
		Triggers: []string{"rental", "lease of", "maintenance contract", "servicing and repair", "support contract", "calibration"},
	},
	{
		Name:     "marketing",
		Triggers: []string{"marketing", "advertising", "public relations", "communications campaign"},
	},
	{
		Name:     "property and estates",
		Triggers: []string{"property services", "estates strategy", "land acquisition", "car park", "lease negotiation"},
	},
	{
		Name:     "machinery parts and printing",
		Triggers: []string{"spare parts", "machinery", "printing services", "franking"},
	},
	{
		Name:     "provider appointment",
		Triggers: []string{"appointment of a provider", "any qualified provider", "provider selection regime", "independent sector provider"},
	},
}

// positiveIndicators must hit for a notice to classify as an opportunity
// once the exclusion passes are clear.
var positiveIndicators = []string{
	// clinical staffing
	"insourcing", "insourced", "locum", "agency staff", "bank staff",
	"medical staffing", "clinical staffing", "nurse staffing",
	// clinical service delivery
	"provision of clinical", "clinical service", "service delivery",
	"managed clinical service", "clinical capacity",
	// patient-facing services
	"patient", "clinic", "outpatient", "theatre lists", "ward cover",
	// procedure performance
	"procedures", "endoscopy", "diagnostics", "surgery", "reporting sessions",
}

// containsAny returns the first keyword of list found as a substring of the
// lower-cased text. List order decides which keyword is reported.
func containsAny(text string, list []string) (string, bool) {
	for _, kw := range list {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
