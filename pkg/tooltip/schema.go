package tooltip

// Kind is the declared value type of a record field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Field declares one record attribute: its output label and value kind.
type Field struct {
	Label string
	Kind  Kind
}

// Marker is the fixed tooltip phrase that flags a radiant item. It is
// excluded from both name and description extraction.
const Marker = "Runes can't be added to this item"

// Schema declares every record field in output column order. The parser and
// the CSV writer both derive from this list, so every row of a run carries
// exactly the same field set no matter how little a given image yielded.
var Schema = []Field{
	{"Name", KindString},
	{"Item Type", KindString},
	{"Is Radiant", KindBool},
	{"Item Quality", KindString},
	{"Grade", KindString},
	{"Max Rune", KindInt},
	{"Attack Power", KindInt},
	{"Physical Defense Bonus", KindInt},
	{"Dagger Defense", KindInt},
	{"Sword Defense", KindInt},
	{"Mace Defense", KindInt},
	{"Axe Defense", KindInt},
	{"Spear Defense", KindInt},
	{"Bow Defense", KindInt},
	{"Mirror Damage", KindInt},
	{"Poison Damage", KindInt},
	{"Fire Damage", KindInt},
	{"Ice Damage", KindInt},
	{"Lightning Damage", KindInt},
	{"Holy Damage", KindInt},
	{"HP Leech", KindInt},
	{"Mana Burn", KindInt},
	{"Strength Bonus", KindInt},
	{"Health Bonus", KindInt},
	{"Dexterity Bonus", KindInt},
	{"Intelligence Bonus", KindInt},
	{"Magic Bonus", KindInt},
	{"HP Bonus", KindInt},
	{"MP Bonus", KindInt},
	{"Fire Resistance", KindInt},
	{"Ice Resistance", KindInt},
	{"Lightning Resistance", KindInt},
	{"Holy Damage Resistance", KindInt},
	{"Poison Damage Resistance", KindInt},
	{"Curse Damage Resistance", KindInt},
	{"Required Magic", KindInt},
	{"Required Intelligence", KindInt},
	{"Required HP", KindInt},
	{"Required Strength", KindInt},
	{"Required Dexterity", KindInt},
	{"Required Level", KindInt},
	{"Durability", KindInt},
	{"Weight", KindInt},
	{"Description", KindString},
}

// Labels returns the schema labels in column order.
func Labels() []string {
	out := make([]string, len(Schema))
	for i, f := range Schema {
		out[i] = f.Label
	}
	return out
}
