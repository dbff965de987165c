package creature

type ElementType string

const (
	Fire     ElementType = "FIRE"
	Water    ElementType = "WATER"
	Grass    ElementType = "GRASS"
	Electric ElementType = "ELECTRIC"
	Ice      ElementType = "ICE"
	Ground   ElementType = "GROUND"
	Rock     ElementType = "ROCK"
	Flying   ElementType = "FLYING"
	Poison   ElementType = "POISON"
	Psychic  ElementType = "PSYCHIC"
	Fighting ElementType = "FIGHTING"
	Normal   ElementType = "NORMAL"
)

type Element struct {
	Type       ElementType   `json:"type"`
	Name       string        `json:"name"`
	Color      string        `json:"color"`
	Emoji      string        `json:"emoji"`
	Strengths  []ElementType `json:"strengths"`
	Weaknesses []ElementType `json:"weaknesses"`
}

// ElementTable is the type-effectiveness graph. It is asymmetric: each side
// is encoded as listed, never derived from the other.
type ElementTable struct {
	byType map[ElementType]Element
	order  []ElementType
}

func NewElementTable(elements []Element) ElementTable {
	t := ElementTable{byType: make(map[ElementType]Element, len(elements))}
	for _, e := range elements {
		if _, dup := t.byType[e.Type]; !dup {
			t.order = append(t.order, e.Type)
		}
		t.byType[e.Type] = e
	}
	return t
}

func DefaultElementTable() ElementTable {
	return NewElementTable([]Element{
		{Type: Fire, Name: "Fire", Color: "#FF6B35", Emoji: "🔥",
			Strengths: []ElementType{Grass, Ice}, Weaknesses: []ElementType{Water, Ground, Rock}},
		{Type: Water, Name: "Water", Color: "#3498DB", Emoji: "💧",
			Strengths: []ElementType{Fire, Ground, Rock}, Weaknesses: []ElementType{Grass, Electric}},
		{Type: Grass, Name: "Grass", Color: "#2ECC71", Emoji: "🌿",
			Strengths: []ElementType{Water, Ground, Rock}, Weaknesses: []ElementType{Fire, Ice, Poison, Flying}},
		{Type: Electric, Name: "Electric", Color: "#F1C40F", Emoji: "⚡",
			Strengths: []ElementType{Water, Flying}, Weaknesses: []ElementType{Ground}},
		{Type: Ice, Name: "Ice", Color: "#85C1E9", Emoji: "❄️",
			Strengths: []ElementType{Grass, Ground, Flying}, Weaknesses: []ElementType{Fire, Fighting, Rock}},
		{Type: Ground, Name: "Ground", Color: "#D2691E", Emoji: "🌍",
			Strengths: []ElementType{Fire, Electric, Poison, Rock}, Weaknesses: []ElementType{Water, Grass, Ice}},
		{Type: Rock, Name: "Rock", Color: "#696969", Emoji: "🗿",
			Strengths: []ElementType{Fire, Ice, Flying}, Weaknesses: []ElementType{Water, Grass, Fighting, Ground}},
		{Type: Flying, Name: "Flying", Color: "#87CEEB", Emoji: "🦅",
			Strengths: []ElementType{Grass, Fighting}, Weaknesses: []ElementType{Electric, Ice, Rock}},
		{Type: Poison, Name: "Poison", Color: "#8E44AD", Emoji: "☠️",
			Strengths: []ElementType{Grass}, Weaknesses: []ElementType{Ground, Psychic}},
		{Type: Psychic, Name: "Psychic", Color: "#E91E63", Emoji: "🔮",
			Strengths: []ElementType{Fighting, Poison}, Weaknesses: nil},
		{Type: Fighting, Name: "Fighting", Color: "#CD853F", Emoji: "👊",
			Strengths: []ElementType{Normal, Rock, Ice}, Weaknesses: []ElementType{Flying, Psychic}},
		{Type: Normal, Name: "Normal", Color: "#95A5A6", Emoji: "⚪",
			Strengths: nil, Weaknesses: []ElementType{Fighting}},
	})
}

func (t ElementTable) Get(et ElementType) (Element, bool) {
	e, ok := t.byType[et]
	return e, ok
}

func (t ElementTable) Types() []ElementType {
	out := make([]ElementType, len(t.order))
	copy(out, t.order)
	return out
}

// Name falls back to the raw type string for unknown types.
func (t ElementTable) Name(et ElementType) string {
	if e, ok := t.byType[et]; ok {
		return e.Name
	}
	return string(et)
}

// Effectiveness returns 2.0 when defense is in attack's strengths, 0.5 when it
// is in attack's weaknesses and 1.0 otherwise, including unknown attack types.
func (t ElementTable) Effectiveness(attack, defense ElementType) float64 {
	e, ok := t.byType[attack]
	if !ok {
		return 1.0
	}
	if containsType(e.Strengths, defense) {
		return 2.0
	}
	if containsType(e.Weaknesses, defense) {
		return 0.5
	}
	return 1.0
}

func containsType(list []ElementType, et ElementType) bool {
	for _, v := range list {
		if v == et {
			return true
		}
	}
	return false
}
