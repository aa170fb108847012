package projector

// Kind says how a field is rendered and parsed in the editor.
type Kind string

const (
	KindText      Kind = "text"
	KindNumber    Kind = "number"
	KindMultiline Kind = "multiline"
	KindToggle    Kind = "toggle"
)

// FieldSpec describes one editable semantic attribute. Key is the preferred
// backend key; AliasKeys are probed in order when Key is absent or empty.
type FieldSpec struct {
	Key       string
	Label     string
	Kind      Kind
	AliasKeys []string
	// StripCity removes the known locality prefix for display only; the
	// stored value keeps its full form.
	StripCity bool
	FullWidth bool
}

// Group is one accordion section of the editor form.
type Group struct {
	Key         string
	Title       string
	Fields      []FieldSpec
	Toggles     []FieldSpec
	Photos      bool
	Placeholder string
}

// DefaultSchema is the console's editor layout. Field order inside a group
// and alias order inside a field are significant: aliases are fallbacks,
// probed left to right.
func DefaultSchema() []Group {
	return []Group{
		{
			Key:   "location",
			Title: "Расположение",
			Fields: []FieldSpec{
				{Key: "address", Label: "Адрес", Kind: KindText, FullWidth: true, AliasKeys: []string{"full_address", "location"}, StripCity: true},
				{Key: "type", Label: "Тип недвижимости", Kind: KindText, AliasKeys: []string{"property_type", "types", "realty_type", "estate_type", "house_type"}},
			},
		},
		{
			Key:   "params",
			Title: "Параметры квартиры",
			Fields: []FieldSpec{
				{Key: "rooms", Label: "Комнат", Kind: KindNumber},
				{Key: "total_area", Label: "Общая площадь", Kind: KindNumber, AliasKeys: []string{"area", "square_total"}},
				{Key: "living_area", Label: "Жилая", Kind: KindNumber, AliasKeys: []string{"square_living"}},
				{Key: "kitchen_area", Label: "Кухня", Kind: KindNumber, AliasKeys: []string{"square_kitchen"}},
				{Key: "layout", Label: "Планировка", Kind: KindText},
				{Key: "ceiling_height", Label: "Высота потолков", Kind: KindNumber},
				{Key: "floor", Label: "Этаж", Kind: KindNumber, AliasKeys: []string{"level"}},
				{Key: "floors", Label: "Этажность", Kind: KindNumber, AliasKeys: []string{"total_floors", "floors_total"}},
			},
		},
		{Key: "photos", Title: "Фото", Photos: true},
		{
			Key:   "features",
			Title: "Особенности квартиры",
			Fields: []FieldSpec{
				{Key: "balconies", Label: "Балконы", Kind: KindText, AliasKeys: []string{"loggias", "balcony", "balconies_count"}},
				{Key: "view_from_windows", Label: "Вид из окна", Kind: KindText, AliasKeys: []string{"view", "window_view"}},
				{Key: "bathroom_type", Label: "Санузел", Kind: KindText, AliasKeys: []string{"bathroom", "bathrooms", "bathroom_count", "bathroom_combined"}},
				{Key: "repair", Label: "Ремонт", Kind: KindText, AliasKeys: []string{"renovation", "repair_type"}},
				{Key: "lifts", Label: "Лифты", Kind: KindText, AliasKeys: []string{"elevator", "elevators"}},
				{Key: "parking", Label: "Парковка", Kind: KindText, AliasKeys: []string{"parking_type"}},
			},
		},
		{
			Key:   "comfort",
			Title: "В квартире есть",
			Toggles: []FieldSpec{
				{Key: "fridge", Label: "Холодильник", Kind: KindToggle},
				{Key: "washer", Label: "Стиральная машина", Kind: KindToggle},
				{Key: "dishwasher", Label: "Посудомойка", Kind: KindToggle},
				{Key: "conditioner", Label: "Кондиционер", Kind: KindToggle},
				{Key: "tv", Label: "Телевизор", Kind: KindToggle},
				{Key: "internet", Label: "Интернет", Kind: KindToggle},
				{Key: "furniture", Label: "Мебель", Kind: KindToggle},
				{Key: "kitchenfurniture", Label: "Мебель на кухне", Kind: KindToggle},
				{Key: "parking", Label: "Парковка", Kind: KindToggle},
			},
		},
		{
			Key:   "description",
			Title: "Описание квартиры",
			Fields: []FieldSpec{
				{Key: "title", Label: "Заголовок", Kind: KindText, FullWidth: true},
				{Key: "description", Label: "Описание", Kind: KindMultiline, FullWidth: true},
			},
		},
		{
			Key:   "price",
			Title: "Цена и условия аренды",
			Fields: []FieldSpec{
				{Key: "price_total", Label: "Цена", Kind: KindNumber, AliasKeys: []string{"price", "price_rub"}},
				{Key: "utilites", Label: "Оплата КУ", Kind: KindText, AliasKeys: []string{"utilities", "communal_payments"}},
				{Key: "prepayment", Label: "Предоплата", Kind: KindText, AliasKeys: []string{"advance_payment"}},
				{Key: "deposit", Label: "Залог", Kind: KindNumber},
				{Key: "termtype", Label: "Срок аренды", Kind: KindText, AliasKeys: []string{"term", "rent_term"}},
				{Key: "commission", Label: "Комиссия", Kind: KindText, AliasKeys: []string{"agent_fee"}},
			},
			Toggles: []FieldSpec{
				{Key: "pets", Label: "Можно с животными", Kind: KindToggle},
				{Key: "children", Label: "Можно с детьми", Kind: KindToggle},
			},
		},
	}
}
