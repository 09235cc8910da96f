package catalog

import "github.com/trueshade/api/models"

type builtinShade struct {
	brand, line, name, hex, undertone string
}

// builtinShades is the static fallback table used when no product store is
// configured. Order matters: it is the tie-break order for ranking.
var builtinShades = []builtinShade{
	// Fenty Pro Filt'r Soft Matte Foundation
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "100", "#F7D8C6", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "110", "#F5D4C0", "cool"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "120", "#F4D0BA", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "130", "#F2CCB4", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "140", "#F0C8AE", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "150", "#EEC4A8", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "160", "#ECC0A2", "cool"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "170", "#EABC9C", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "180", "#E8B896", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "185", "#E6B490", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "190", "#E4B08A", "cool"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "200", "#E2AC84", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "210", "#E0A87E", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "220", "#DEA478", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "230", "#DCA072", "cool"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "240", "#DA9C6C", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "250", "#D89866", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "260", "#D69460", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "280", "#D28C54", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "290", "#D0884E", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "300", "#CE8448", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "310", "#CC8042", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "320", "#CA7C3C", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "330", "#C87836", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "340", "#C67430", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "345", "#C4702A", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "350", "#C26C24", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "360", "#C0681E", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "370", "#BE6418", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "380", "#BC6012", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "385", "#BA5C0C", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "390", "#B85806", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "400", "#B65400", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "410", "#A84C00", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "420", "#9A4400", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "430", "#8C3C00", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "440", "#7E3400", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "450", "#702C00", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "460", "#622400", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "470", "#541C00", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "475", "#4A1800", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "480", "#401400", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "490", "#361000", "warm"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "495", "#2C0C00", "neutral"},
	{"Fenty", "Pro Filt'r Soft Matte Foundation", "498", "#220800", "warm"},

	// Nars Natural Radiant Longwear Foundation
	{"Nars", "Natural Radiant Longwear Foundation", "Siberia", "#F5D9C8", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Gobi", "#F0CCB8", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Deauville", "#EBC4AC", "cool"},
	{"Nars", "Natural Radiant Longwear Foundation", "Mont Blanc", "#E6BCA0", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Salzburg", "#E1B494", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Oslo", "#DCAC88", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Ceylan", "#D7A47C", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Vallauris", "#D29C70", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Syracuse", "#CD9464", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Stromboli", "#C88C58", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Barcelona", "#C3844C", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Santa Fe", "#BE7C40", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Trinidad", "#B97434", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Tahoe", "#B46C28", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Macao", "#AF641C", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Syracuse Deep", "#AA5C10", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "Benares", "#A55404", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Cadiz", "#9A4C00", "neutral"},
	{"Nars", "Natural Radiant Longwear Foundation", "New Caledonia", "#8F4400", "warm"},
	{"Nars", "Natural Radiant Longwear Foundation", "Minsk", "#843C00", "neutral"},

	// Too Faced Born This Way Foundation
	{"Too Faced", "Born This Way Foundation", "Cloud", "#F8DDD0", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Snow", "#F6D9CA", "cool"},
	{"Too Faced", "Born This Way Foundation", "Pearl", "#F4D5C4", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Alabaster", "#F2D1BE", "warm"},
	{"Too Faced", "Born This Way Foundation", "Porcelain", "#F0CDB8", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Vanilla", "#EEC9B2", "cool"},
	{"Too Faced", "Born This Way Foundation", "Light Beige", "#ECC5AC", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Natural Beige", "#EAC1A6", "warm"},
	{"Too Faced", "Born This Way Foundation", "Warm Sand", "#E8BDA0", "warm"},
	{"Too Faced", "Born This Way Foundation", "Sand", "#E6B99A", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Seashell", "#E4B594", "cool"},
	{"Too Faced", "Born This Way Foundation", "Golden Beige", "#E2B18E", "warm"},
	{"Too Faced", "Born This Way Foundation", "Nude", "#E0AD88", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Warm Nude", "#DEA982", "warm"},
	{"Too Faced", "Born This Way Foundation", "Caramel", "#DCA57C", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Honey", "#DAA176", "warm"},
	{"Too Faced", "Born This Way Foundation", "Toffee", "#D89D70", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Golden", "#D6996A", "warm"},
	{"Too Faced", "Born This Way Foundation", "Chestnut", "#D49564", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Mocha", "#D2915E", "warm"},
	{"Too Faced", "Born This Way Foundation", "Cocoa", "#D08D58", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Mahogany", "#CE8952", "warm"},
	{"Too Faced", "Born This Way Foundation", "Espresso", "#CC854C", "neutral"},
	{"Too Faced", "Born This Way Foundation", "Chocolate", "#C07840", "warm"},
}

// BuiltinProducts returns the static table as product rows
func BuiltinProducts() []models.Product {
	products := make([]models.Product, 0, len(builtinShades))
	for _, s := range builtinShades {
		products = append(products, models.Product{
			Brand:       s.brand,
			ProductLine: s.line,
			ShadeName:   s.name,
			HexColor:    s.hex,
			Undertone:   s.undertone,
		})
	}
	return products
}
