// Package axes holds the per-axis keyword referential and the registry
// that validates and serves axis configurations to the pipeline.
package axes

import "github.com/Samy8769/mail-classifier-3/internal/heuristic"

// DefaultOrder is the processing order for the orchestrator. Later axes
// see the labels already resolved for earlier ones as arbitration
// context, so dependencies (project before supplier, type before status
// consumers) must come first.
var DefaultOrder = []string{
	"type_mail",
	"statut",
	"client",
	"affaire",
	"projet",
	"fournisseur",
	"equipement_type",
	"equipement_designation",
	"essais",
	"technique",
	"qualite",
	"jalons",
	"anomalies",
	"nrb",
}

type labelDef struct {
	keywords []string
	synonyms []string
}

func newAxis(name, prefix string, labels map[string]labelDef) heuristic.AxisConfig {
	cfg := heuristic.AxisConfig{
		Name:               name,
		Prefix:             prefix,
		Keywords:           make(map[string][]string, len(labels)),
		Synonyms:           make(map[string][]string, len(labels)),
		AmbiguityThreshold: 0.15,
		MaxCandidates:      5,
	}
	for label, def := range labels {
		cfg.Keywords[label] = def.keywords
		cfg.Synonyms[label] = def.synonyms
	}
	return cfg
}

// Builtin returns a fresh copy of the built-in axis referential. The C_
// (client), P_ (project) and F_ (supplier) lists are closed: the pipeline
// never invents labels outside them, and deployments replace them with
// their own referential via override files.
func Builtin() map[string]heuristic.AxisConfig {
	configs := make(map[string]heuristic.AxisConfig)

	configs["type_mail"] = newAxis("type_mail", "T_", map[string]labelDef{
		"T_Demande_Info": {
			keywords: []string{
				"demande", "question", "renseignement", "information",
				"request", "inquiry", "besoin de", "pouvez-vous",
				"pourriez-vous", "souhaitons avoir",
			},
			synonyms: []string{"rfi", "request for information", "demande de renseignement"},
		},
		"T_Offre": {
			keywords: []string{
				"offre", "devis", "proposition", "cotation", "prix",
				"tarif", "quote", "tender", "appel offre", "prix unitaire",
			},
			synonyms: []string{"rfq", "request for quotation", "demande de prix"},
		},
		"T_Commande": {
			keywords: []string{
				"commande", "bon de commande", "purchase order", "order",
				"achat", "passation commande",
			},
			synonyms: []string{"bdc", "po", "order confirmation", "confirmation commande"},
		},
		"T_Livraison": {
			keywords: []string{
				"livraison", "expedition", "delivery", "expedi", "recu",
				"reception", "shipped", "dispatch", "bordereau",
			},
			synonyms: []string{"delivery note", "shipping note", "bon de livraison"},
		},
		"T_Qualite": {
			keywords: []string{
				"qualite", "non-conformite", "defaut", "nc",
				"quality", "non conformance", "deviation",
			},
			synonyms: []string{"nrc", "ncr", "fiche anomalie", "quality issue"},
		},
		"T_Anomalie": {
			keywords: []string{
				"anomalie", "defaillance", "panne", "erreur",
				"failure", "fault", "defect", "incident technique",
			},
			synonyms: []string{"failure report", "probleme technique"},
		},
		"T_Reunion": {
			keywords: []string{
				"reunion", "meeting", "conference", "invite", "invitation",
				"kick-off", "review", "revue", "convocation",
			},
			synonyms: []string{"pdr", "cdr", "far", "sar", "pbr", "kick off"},
		},
		"T_Projet": {
			keywords: []string{
				"planning", "milestone", "jalon", "schedule",
				"roadmap", "avancement", "progres",
			},
		},
		"T_Rapport": {
			keywords: []string{
				"rapport", "report", "compte rendu", "cr", "summary",
				"synthese", "bilan", "flash report",
			},
			synonyms: []string{"meeting minutes", "minutes de reunion"},
		},
		"T_Action_Requise": {
			keywords: []string{
				"action requise", "action required", "a faire", "to do",
				"merci de", "priere de",
			},
			synonyms: []string{"action item", "action needed"},
		},
	})

	statut := newAxis("statut", "S_", map[string]labelDef{
		"S_Urgent": {
			keywords: []string{
				"urgent", "urgence", "asap", "immediately", "critical",
				"critique", "au plus vite", "immediatement", "stop",
			},
			synonyms: []string{"highest priority", "priorite maximale", "top priority"},
		},
		"S_Action_Requise": {
			keywords: []string{
				"merci de", "please", "pouvez-vous", "could you",
				"priere de", "nous vous demandons", "action requise",
				"action required", "a faire", "to do",
			},
			synonyms: []string{"action item", "action needed"},
		},
		"S_En_Attente": {
			keywords: []string{
				"en attente", "waiting", "pending", "a venir", "upcoming",
				"en cours", "in progress", "on hold",
			},
			synonyms: []string{"awaiting", "standby"},
		},
		"S_Information": {
			keywords: []string{
				"pour information", "fyi", "pour votre information",
				"for your information", "for information", "no action required",
				"aucune action", "a titre informatif",
			},
			synonyms: []string{"for info", "pour info"},
		},
		"S_Archive": {
			keywords: []string{
				"archive", "clos", "closed", "termine", "done",
				"completed", "finalise", "no further action", "resolu",
			},
			synonyms: []string{"resolved", "ferme"},
		},
		"S_Classification_incertaine": {},
	})
	statut.AmbiguityThreshold = 0.20
	statut.MaxCandidates = 3
	configs["statut"] = statut

	client := newAxis("client", "C_", map[string]labelDef{
		"C_ArianeGroup": {
			keywords: []string{"ariane", "arianegroup", "arianespace", "ariane 6"},
			synonyms: []string{"ag"},
		},
		"C_Airbus": {
			keywords: []string{"airbus", "airbus defence", "ads"},
			synonyms: []string{"airbus defense", "airbus defense and space"},
		},
		"C_Thales": {
			keywords: []string{"thales", "thales alenia", "tes"},
			synonyms: []string{"thalès alenia space", "tas"},
		},
		"C_CNES": {
			keywords: []string{"cnes", "centre national etudes spatiales"},
			synonyms: []string{"agence spatiale francaise"},
		},
		"C_ESA": {
			keywords: []string{"esa", "european space agency"},
			synonyms: []string{"agence spatiale europeenne"},
		},
		"C_Safran": {
			keywords: []string{"safran", "snecma", "herakles"},
		},
		"C_OHB": {
			keywords: []string{"ohb"},
		},
		"C_ISAE": {
			keywords: []string{"isae", "supaero"},
		},
	})
	client.AmbiguityThreshold = 0.10
	configs["client"] = client

	affaire := newAxis("affaire", "A_", map[string]labelDef{})
	affaire.AmbiguityThreshold = 0.10
	configs["affaire"] = affaire

	projet := newAxis("projet", "P_", map[string]labelDef{
		"P_Projet_AD": {},
		"P_GALILEO":   {keywords: []string{"galileo", "gnss"}},
		"P_SENTINEL":  {keywords: []string{"sentinel", "copernicus"}},
		"P_JUICE":     {keywords: []string{"juice", "jupiter"}},
		"P_PLATO":     {keywords: []string{"plato", "planet transits"}},
		"P_EUCLID":    {keywords: []string{"euclid"}},
		"P_ATHENA":    {keywords: []string{"athena", "x-ray telescope"}},
		"P_ARIEL":     {keywords: []string{"ariel", "exoplanet"}},
	})
	projet.AmbiguityThreshold = 0.10
	configs["projet"] = projet

	fournisseur := newAxis("fournisseur", "F_", map[string]labelDef{
		"F_Radiall":  {keywords: []string{"radiall"}},
		"F_Tesat":    {keywords: []string{"tesat"}},
		"F_Amphenol": {keywords: []string{"amphenol"}},
		"F_Cobham":   {keywords: []string{"cobham"}},
		"F_Saft":     {keywords: []string{"saft"}},
		"F_SatCom":   {keywords: []string{"satcom"}, synonyms: []string{"sat com"}},
		"F_Astrium":  {keywords: []string{"astrium"}},
	})
	fournisseur.AmbiguityThreshold = 0.10
	configs["fournisseur"] = fournisseur

	configs["equipement_type"] = newAxis("equipement_type", "EQT_", map[string]labelDef{
		"EQT_Camera": {
			keywords: []string{"camera", "capteur optique", "optical sensor", "imager"},
			synonyms: []string{"imaging unit", "focal plane", "detector"},
		},
		"EQT_Antenne": {
			keywords: []string{"antenne", "antenna", "reflecteur", "reflector", "feed"},
			synonyms: []string{"ant", "horn", "diplexer"},
		},
		"EQT_TWTA": {
			keywords: []string{"twta", "travelling wave tube", "amplificateur onde progressive"},
			synonyms: []string{"hpa twta"},
		},
		"EQT_SSPA": {
			keywords: []string{"sspa", "solid state power amplifier"},
			synonyms: []string{"amplificateur solide"},
		},
		"EQT_Coupleur": {
			keywords: []string{"coupleur", "coupler", "divider", "combiner", "power divider"},
		},
		"EQT_Recepteur": {
			keywords: []string{"recepteur", "receiver", "lna", "low noise amplifier"},
		},
		"EQT_Emetteur": {
			keywords: []string{"emetteur", "transmitter", "tx module"},
		},
		"EQT_Structure": {
			keywords: []string{"structure", "panneau", "panel", "chassis", "frame"},
			synonyms: []string{"primary structure"},
		},
		"EQT_OBC": {
			keywords: []string{"obc", "onboard computer", "ordinateur bord", "flight computer"},
			synonyms: []string{"on-board computer", "dpu"},
		},
		"EQT_Batterie": {
			keywords: []string{"batterie", "battery", "accumulateur", "cell"},
			synonyms: []string{"li-ion", "nickel hydrogen", "nhx"},
		},
		"EQT_Panneau_Solaire": {
			keywords: []string{"panneau solaire", "solar panel", "solar array"},
			synonyms: []string{"solar wing", "photovoltaique", "sar"},
		},
		"EQT_Propulsion": {
			keywords: []string{"propulsion", "propulseur", "thruster", "moteur chimique"},
			synonyms: []string{"hydrazine", "xenon", "ion engine"},
		},
		"EQT_Connecteur": {
			keywords: []string{"connecteur", "connector", "harness", "cable", "faisceau"},
			synonyms: []string{"wiring", "cabling"},
		},
		"EQT_Gyroscope": {
			keywords: []string{"gyroscope", "gyro", "rate sensor"},
			synonyms: []string{"imu", "inertial measurement unit"},
		},
		"EQT_StarTracker": {
			keywords: []string{"star tracker", "viseur etoiles", "stellar sensor"},
		},
	})

	designation := newAxis("equipement_designation", "EQ_", map[string]labelDef{
		"EQ_FM1": {keywords: []string{"fm1", "flight model 1", "flight model one"}},
		"EQ_FM2": {keywords: []string{"fm2", "flight model 2"}},
		"EQ_FM3": {keywords: []string{"fm3", "flight model 3"}},
		"EQ_EQM": {keywords: []string{"eqm", "engineering qualification model"}},
		"EQ_EM":  {keywords: []string{"em", "engineering model"}},
		"EQ_PFM": {keywords: []string{"pfm", "proto flight model", "proto-flight model"}},
		"EQ_QM":  {keywords: []string{"qm", "qualification model"}},
		"EQ_STM": {keywords: []string{"stm", "structural thermal model"}},
		"EQ_BEM": {keywords: []string{"bem", "bread board model", "breadboard"}},
		"EQ_FS":  {keywords: []string{"fs", "flight spare"}},
	})
	designation.AmbiguityThreshold = 0.20
	// The only axis allowed regex signal: serial/part number formats.
	designation.ExtractPatterns = []string{
		`\b[A-Z]{2,4}-\d{3,6}\b`,       // CAM-001234, FM-0023
		`\bSN[:\s]?\d{4,10}\b`,         // SN:12345
		`\bPN[:\s]?[A-Z0-9\-]{4,15}\b`, // PN:ABC-1234
		`\b\d{4}-[A-Z]{2,4}-\d{3,6}\b`, // 2024-CAM-001
		`\b[A-Z]{2,3}\d{1,4}\b`,        // FM1, FM12, CAM001
	}
	configs["equipement_designation"] = designation

	configs["essais"] = newAxis("essais", "E_", map[string]labelDef{
		"E_BSI": {keywords: []string{"bsi", "banc simulation interface"}},
		"E_BVT": {
			keywords: []string{"bvt", "banc verification thermique"},
			synonyms: []string{"thermal vacuum test", "tv test"},
		},
		"E_BCG": {
			keywords: []string{"bcg", "banc centrifuge"},
			synonyms: []string{"centrifuge test", "acceleration test"},
		},
		"E_VIBRATION": {
			keywords: []string{
				"essai vibration", "vibration test", "campagne vibration",
				"test vibratoire", "essais vibratoires",
			},
			synonyms: []string{"shaker test", "banc vibration"},
		},
		"E_CHOC": {
			keywords: []string{"essai choc", "shock test", "campagne choc"},
			synonyms: []string{"pyro shock", "pyroshock"},
		},
		"E_EMC": {
			keywords: []string{
				"emc", "electromagnetic compatibility",
				"compatibilite electromagnetique", "radiated emission",
			},
			synonyms: []string{"cem", "emf", "electromagnetic test"},
		},
		"E_ACOUSTIQUE": {
			keywords: []string{"essai acoustique", "acoustic test", "noise test"},
			synonyms: []string{"reverberant chamber"},
		},
		"E_THERMOVIDE": {
			keywords: []string{
				"thermo vide", "thermovide", "thermal vacuum",
				"essai thermique sous vide", "tv test",
			},
			synonyms: []string{"tvac"},
		},
		"E_STATIQUE": {
			keywords: []string{"essai statique", "static test", "load test"},
		},
		"E_SEPARATION": {
			keywords: []string{"essai separation", "separation test", "separation mecanique"},
		},
	})

	configs["technique"] = newAxis("technique", "TC_", map[string]labelDef{
		"TC_Integration": {
			keywords: []string{
				"integration", "assemblage", "assembly", "ait",
				"montage", "installation", "integration campaign",
			},
			synonyms: []string{"ait campaign"},
		},
		"TC_Test": {
			keywords: []string{"test", "essai", "verification", "validation", "atv"},
		},
		"TC_Conception": {
			keywords: []string{"conception", "design", "dimensionnement", "calcul"},
		},
		"TC_Manufacturing": {
			keywords: []string{"fabrication", "manufacturing", "production", "usinage"},
		},
		"TC_Software": {
			keywords: []string{"logiciel", "software", "firmware", "code", "patch"},
			synonyms: []string{"sw", "flight software"},
		},
		"TC_Documentation": {
			keywords: []string{
				"documentation", "document", "specification", "icd",
				"interface document", "drd",
			},
			synonyms: []string{"spec", "srd", "idd"},
		},
		"TC_Qualification": {
			keywords: []string{"qualification", "qualify", "qualif", "qualification test"},
			synonyms: []string{"qr"},
		},
		"TC_Acceptance": {
			keywords: []string{"acceptance", "reception", "acceptance test"},
			synonyms: []string{"ar", "fat"},
		},
		"TC_Maintenance": {
			keywords: []string{"maintenance", "repair", "reparation", "overhaul"},
		},
		"TC_Analyse": {
			keywords: []string{"analyse", "analysis", "investigation", "root cause"},
			synonyms: []string{"rca", "root cause analysis"},
		},
	})

	configs["qualite"] = newAxis("qualite", "Q_", map[string]labelDef{
		"Q_Certification": {
			keywords: []string{"certification", "certificat", "certificate", "approved"},
		},
		"Q_Audit": {
			keywords: []string{"audit", "inspection", "surveillance", "assessment"},
		},
		"Q_NonConformite": {
			keywords: []string{
				"non-conformite", "nc", "non conformance", "ncr",
				"deviation", "waiver",
			},
			synonyms: []string{"nrc"},
		},
		"Q_Action_Corrective": {
			keywords: []string{"action corrective", "corrective action", "8d", "car"},
		},
		"Q_PPAP": {
			keywords: []string{"ppap", "production part approval"},
			synonyms: []string{"first article test", "fat"},
		},
		"Q_Plan_Qualite": {
			keywords: []string{"plan qualite", "quality plan", "qap"},
			synonyms: []string{"assurance qualite"},
		},
		"Q_PVR": {
			keywords: []string{"pvr", "proces verbal reception", "acceptance record"},
		},
		"Q_Tracabilite": {
			keywords: []string{"traçabilite", "traceability", "pedigree", "history file"},
		},
	})

	jalons := newAxis("jalons", "J_", map[string]labelDef{
		"J_PDR": {keywords: []string{"pdr", "preliminary design review", "revue preliminaire"}},
		"J_CDR": {keywords: []string{"cdr", "critical design review", "revue critique"}},
		"J_QR":  {keywords: []string{"qr", "qualification review", "revue qualification"}},
		"J_AR":  {keywords: []string{"ar", "acceptance review", "revue reception"}},
		"J_FAR": {keywords: []string{"far", "flight acceptance review"}},
		"J_SAR": {keywords: []string{"sar", "system acceptance review"}},
		"J_MRR": {keywords: []string{"mrr", "manufacturing readiness review"}},
		"J_TRR": {keywords: []string{"trr", "test readiness review"}},
		"J_ORR": {keywords: []string{"orr", "operations readiness review"}},
		"J_KO": {
			keywords: []string{"kick-off", "kickoff", "lancement projet", "reunion lancement"},
			synonyms: []string{"project kick-off"},
		},
		"J_SRR": {keywords: []string{"srr", "system requirements review", "revue exigences"}},
	})
	jalons.AmbiguityThreshold = 0.12
	configs["jalons"] = jalons

	configs["anomalies"] = newAxis("anomalies", "AN_", map[string]labelDef{
		"AN_Structurelle": {
			keywords: []string{
				"fracture", "fissure", "crack", "corrosion", "deformation",
				"rupture", "cassure",
			},
		},
		"AN_Electrique": {
			keywords: []string{
				"court-circuit", "short circuit", "surtension", "overvoltage",
				"panne electrique", "electrical failure", "latch-up",
			},
		},
		"AN_Software": {
			keywords: []string{
				"bug", "crash", "erreur logiciel", "software error",
				"memory corruption", "reboot inopiné",
			},
		},
		"AN_Thermique": {
			keywords: []string{
				"surchauffe", "overheat", "thermal anomaly",
				"anomalie thermique", "depassement temperature",
			},
		},
		"AN_Fonctionnelle": {
			keywords: []string{
				"dysfonctionnement", "malfunction", "perte de fonction",
				"loss of function", "out of spec", "hors spec",
			},
		},
		"AN_Contamination": {
			keywords: []string{"contamination", "pollution", "particule", "particle"},
		},
		"AN_Documentaire": {
			keywords: []string{
				"erreur documentation", "document error", "inconsistance",
				"inconsistency document",
			},
		},
	})

	configs["nrb"] = newAxis("nrb", "NRB_", map[string]labelDef{
		"NRB_Ouvert": {keywords: []string{"nrb ouvert", "nrb open", "open nrb", "nrb en cours"}},
		"NRB_Clos": {
			keywords: []string{"nrb clos", "nrb closed", "nrb termine", "nrb ferme"},
			synonyms: []string{"nrb resolved"},
		},
		"NRB_En_Attente":       {keywords: []string{"nrb attente", "nrb pending", "nrb on hold"}},
		"NRB_Decision_Requise": {keywords: []string{"nrb decision", "nrb vote", "decision nrb"}},
	})

	return configs
}
