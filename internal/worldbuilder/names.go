package worldbuilder

// World name components - adjective + noun combinations.
var worldAdjectives = []string{
	"Ashen", "Ember", "Hollow", "Sunken", "Verdant",
	"Salt-Worn", "Rust-Red", "Quiet", "Shattered", "Tidal",
	"Frost-Bound", "Amber", "Slate", "Cindered", "Mossgrown",
}

var worldNouns = []string{
	"Vale", "Reach", "Hearthlands", "Terraces", "Lowlands",
	"Archipelago", "Basin", "Steppe", "Shorelands", "Highcroft",
	"Delta", "Expanse", "Crossing", "Refuge", "Commons",
}

// Craft name components - qualifier + craft root.
var craftQualifiers = []string{
	"Tidal", "Kiln-Fired", "Cold-Forged", "Terraced", "Fermented",
	"Windspun", "Deep-Well", "Graftwood", "Loomed", "Quenched",
	"Salt-Cured", "Charcoal", "Resin-Sealed", "Stone-Cut", "Dyed",
}

var craftRoots = []string{
	"Glasswork", "Irrigation", "Smithing", "Weaving", "Masonry",
	"Herbcraft", "Shipwrighting", "Milling", "Tanning", "Pottery",
	"Beekeeping", "Cartography", "Letterpress", "Distillation", "Orcharding",
}

// Region names for event context.
var regionNames = []string{
	"Lowmarket Terraces", "The Brine Steps", "Kilnrow", "Fallowfield",
	"The Drowned Quarter", "Cinder Gate", "Weaver's Bend", "Old Aqueduct",
	"The Grain Commons", "Lantern Reach", "Saltgarden", "The Mossy Stair",
}

// Guild name components.
var guildTrades = []string{
	"Glassblowers'", "Millwrights'", "Dyers'", "Shipwrights'",
	"Stonecutters'", "Herbalists'", "Chandlers'", "Coopers'",
}

var guildForms = []string{
	"Circle", "Compact", "Assembly", "Cooperative", "Hall", "Union",
}

// School epithets for teaching lineages.
var schoolEpithets = []string{
	"Patient Hand", "Long Furrow", "Steady Flame", "Open Ledger",
	"Third Harvest", "Turning Wheel", "Braided Current", "Unbroken Thread",
}

// Legend name components - culturally diverse first names + craft epithets.
var legendFirstNames = []string{
	"Amara", "Kenji", "Priya", "Rowan", "Layla", "Mateo",
	"Nia", "Hiroshi", "Zahra", "Vera", "Kofi", "Lucia",
	"Tala", "Arjun", "Isolde", "Omar", "Mei", "Sekou",
}

var legendEpithets = []string{
	"the Kilnmother", "Nine-Fingers", "of the Salt Terraces", "the Quiet Forge",
	"Greenhand", "the Last Cartwright", "of the Drowned Quarter", "Threadkeeper",
	"the Well-Digger", "Emberwise", "of the Long Furrow", "the Tidewatcher",
}

// Link bond descriptors for starter graphs.
var linkBonds = []string{
	"shared toolmakers", "common apprentices", "adjacent workshops",
	"seasonal barter", "rival lineages", "shared materials",
}

// Prompts for defining memory choices.
var memoryPrompts = []string{
	"Who kept the craft alive when the workshops went dark?",
	"What was saved from the flood, and what was let go?",
	"Which apprentice carried the technique to the next valley?",
	"What did the settlement trade away to survive the winter?",
	"Whose name is spoken when the kiln is first lit each year?",
	"What lesson did the newcomers bring that the old guild resisted?",
}
