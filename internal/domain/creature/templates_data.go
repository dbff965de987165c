package creature

// DefaultRegistry returns the shipped template catalogue. Several evolution
// targets name species that are not in the catalogue; those creatures never
// become eligible to evolve.
func DefaultRegistry() Registry {
	return NewRegistry(defaultTemplates(), []string{"furball", "quickpaw"})
}

func tmpl(id, name string, et ElementType, hp, atk, def, spd int, evoLevel int, evoTarget string, rarity Rarity, habitat ...string) Template {
	return Template{
		ID:              id,
		Name:            name,
		Type:            et,
		BaseStats:       Stats{HP: hp, Attack: atk, Defense: def, Speed: spd},
		EvolutionLevel:  evoLevel,
		EvolutionTarget: evoTarget,
		Rarity:          rarity,
		Habitat:         habitat,
	}
}

func defaultTemplates() []Template {
	return []Template{
		tmpl("flamewyrm", "Flamewyrm", Fire, 45, 35, 30, 25, 16, "infernowyrm", Common, "volcanic", "desert"),
		tmpl("infernowyrm", "Infernowyrm", Fire, 65, 55, 45, 40, 0, "", Uncommon, "volcanic"),
		tmpl("emberite", "Emberite", Fire, 35, 40, 25, 30, 18, "blazestone", Common, "volcanic", "mountain"),
		tmpl("blazestone", "Blazestone", Fire, 55, 65, 50, 35, 0, "", Rare, "volcanic"),

		tmpl("aquafin", "Aquafin", Water, 40, 30, 35, 20, 16, "tidalfin", Common, "water", "swamp"),
		tmpl("tidalfin", "Tidalfin", Water, 60, 50, 55, 35, 0, "", Uncommon, "water"),
		tmpl("streamlet", "Streamlet", Water, 50, 25, 40, 45, 20, "torrentbeast", Common, "water", "forest"),

		tmpl("leafling", "Leafling", Grass, 45, 25, 40, 20, 14, "thornbeast", Common, "forest", "jungle", "grassland"),
		tmpl("thornbeast", "Thornbeast", Grass, 70, 45, 65, 25, 0, "", Uncommon, "forest", "jungle"),
		tmpl("vinewhip", "Vinewhip", Grass, 40, 35, 30, 35, 18, "jungleguard", Common, "jungle", "swamp"),

		tmpl("sparkle", "Sparkle", Electric, 35, 40, 25, 50, 15, "voltbeast", Uncommon, "grassland", "mountain"),
		tmpl("voltbeast", "Voltbeast", Electric, 55, 65, 40, 75, 0, "", Rare, "mountain"),

		tmpl("frostling", "Frostling", Ice, 50, 30, 45, 15, 20, "glacierbeast", Uncommon, "ice", "tundra", "mountain"),
		tmpl("snowpup", "Snowpup", Ice, 40, 25, 35, 30, 16, "blizzardwolf", Common, "tundra", "ice"),

		tmpl("rockpup", "Rockpup", Ground, 55, 40, 50, 15, 18, "earthguard", Common, "mountain", "desert", "grassland"),
		tmpl("sandcrawler", "Sandcrawler", Ground, 45, 35, 45, 25, 16, "dunelord", Common, "desert"),

		tmpl("pebble", "Pebble", Rock, 40, 45, 60, 10, 22, "boulder", Common, "mountain", "volcanic"),
		tmpl("crystalite", "Crystalite", Rock, 35, 50, 55, 20, 25, "gemguard", Rare, "mountain", "volcanic"),

		tmpl("windlet", "Windlet", Flying, 35, 30, 25, 60, 16, "stormwing", Common, "grassland", "mountain", "forest"),
		tmpl("cloudpuff", "Cloudpuff", Flying, 50, 25, 30, 45, 20, "skyguard", Uncommon, "mountain"),

		tmpl("toxiling", "Toxiling", Poison, 40, 35, 35, 30, 16, "venombeast", Common, "swamp", "jungle"),
		tmpl("sludgeling", "Sludgeling", Poison, 60, 30, 40, 20, 18, "toxicguard", Uncommon, "swamp"),

		tmpl("mindling", "Mindling", Psychic, 45, 40, 30, 35, 20, "psybeast", Rare, "mountain", "forest"),

		tmpl("fistling", "Fistling", Fighting, 50, 45, 35, 30, 18, "brawler", Uncommon, "mountain", "grassland"),

		tmpl("furball", "Furball", Normal, 55, 30, 30, 35, 15, "fluffguard", Common, "grassland", "forest"),
		tmpl("quickpaw", "Quickpaw", Normal, 40, 35, 25, 55, 16, "swiftclaw", Common, "grassland", "forest"),

		tmpl("kitsunesprout", "Kitsune Sprout", Grass, 45, 30, 35, 40, 18, "kitsunesage", Common, "forest", "grassland"),
		tmpl("kitsunesage", "Kitsune Sage", Grass, 75, 55, 60, 65, 0, "", Rare, "forest"),
		tmpl("tanukipup", "Tanuki Pup", Normal, 50, 40, 40, 30, 20, "tanukitrickster", Common, "forest", "grassland"),
		tmpl("tanukitrickster", "Tanuki Trickster", Normal, 80, 65, 65, 55, 0, "", Uncommon, "forest"),
		tmpl("kappawarrior", "Kappa Warrior", Water, 55, 45, 50, 35, 25, "kappamaster", Uncommon, "water", "swamp"),
		tmpl("kappamaster", "Kappa Master", Water, 85, 70, 75, 50, 0, "", Rare, "water"),
		tmpl("tenguchick", "Tengu Chick", Flying, 40, 45, 30, 50, 24, "tengumaster", Uncommon, "mountain", "forest"),
		tmpl("tengumaster", "Tengu Master", Flying, 70, 75, 55, 85, 0, "", Rare, "mountain"),
		tmpl("shibainu", "Shiba Inu", Normal, 45, 40, 40, 45, 0, "", Common, "grassland", "forest"),
		tmpl("nekomata", "Nekomata", Psychic, 50, 35, 35, 60, 0, "", Rare, "forest", "ruins"),
	}
}
