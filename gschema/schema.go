// Package gschema holds the per graph type field schema and maps table rows
// into the field shape each graph type expects.
package gschema

import (
	"sort"
)

// GraphType identifies a chart presentation.
type GraphType string

// Graph types.
const (
	BarChart                        GraphType = "barChart"
	GroupedBarChart                 GraphType = "groupedBarChart"
	StackedBarChart                 GraphType = "stackedBarChart"
	LineChart                       GraphType = "lineChart"
	MultiLineChart                  GraphType = "multiLineChart"
	DualAxisLineChart               GraphType = "dualAxisLineChart"
	LineChartWithConfidenceInterval GraphType = "lineChartWithConfidenceInterval"
	DifferenceLineChart             GraphType = "differenceLineChart"
	AreaChart                       GraphType = "areaChart"
	DumbbellChart                   GraphType = "dumbbellChart"
	ButterflyChart                  GraphType = "butterflyChart"
	DonutChart                      GraphType = "donutChart"
	ScatterPlot                     GraphType = "scatterPlot"
	CirclePacking                   GraphType = "circlePacking"
	TreeMap                         GraphType = "treeMap"
	HeatMap                         GraphType = "heatMap"
	RadarChart                      GraphType = "radarChart"
	SparkLine                       GraphType = "sparkLine"
	SlopeChart                      GraphType = "slopeChart"
	StripChart                      GraphType = "stripChart"
	BeeSwarmChart                   GraphType = "beeSwarmChart"
	ParetoChart                     GraphType = "paretoChart"
	ChoroplethMap                   GraphType = "choroplethMap"
	BivariateChoroplethMap          GraphType = "bivariateChoroplethMap"
	DotDensityMap                   GraphType = "dotDensityMap"
	UnitChart                       GraphType = "unitChart"
	StatCard                        GraphType = "statCard"
	WaterfallChart                  GraphType = "waterfallChart"
	SankeyChart                     GraphType = "sankeyChart"

	GeoHubMap                   GraphType = "geoHubMap"
	GeoHubCompareMap            GraphType = "geoHubCompareMap"
	GeoHubMapWithLayerSelection GraphType = "geoHubMapWithLayerSelection"
	DataTable                   GraphType = "dataTable"
	DataCards                   GraphType = "dataCards"
)

// Slot is a field of a graph type schema.
type Slot struct {
	ID       string `json:"id"`
	Required bool   `json:"required"`
	// Multiple slots take an ordered list of columns and produce a list of
	// values.
	Multiple bool `json:"multiple"`
}

// Schema describes the fields of a graph type, rows of PassThrough types
// are handed to the graph as they are.
type Schema struct {
	Slots       []Slot `json:"slots"`
	PassThrough bool   `json:"passThrough,omitempty"`
}

// Slot returns the slot with the id.
func (s Schema) Slot(id string) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return Slot{}, false
}

func req(id string) Slot      { return Slot{ID: id, Required: true} }
func opt(id string) Slot      { return Slot{ID: id} }
func reqMulti(id string) Slot { return Slot{ID: id, Required: true, Multiple: true} }

var passThrough = Schema{Slots: []Slot{}, PassThrough: true}

var schemas = map[GraphType]Schema{
	BarChart:                        {Slots: []Slot{req("label"), req("size"), opt("color"), opt("subNote")}},
	GroupedBarChart:                 {Slots: []Slot{req("label"), reqMulti("size")}},
	StackedBarChart:                 {Slots: []Slot{req("label"), reqMulti("size")}},
	LineChart:                       {Slots: []Slot{req("date"), req("y")}},
	MultiLineChart:                  {Slots: []Slot{req("date"), reqMulti("y")}},
	DualAxisLineChart:               {Slots: []Slot{req("date"), req("y1"), req("y2")}},
	LineChartWithConfidenceInterval: {Slots: []Slot{req("date"), req("y"), req("yMin"), req("yMax")}},
	DifferenceLineChart:             {Slots: []Slot{req("date"), req("y1"), req("y2")}},
	AreaChart:                       {Slots: []Slot{req("date"), reqMulti("y")}},
	DumbbellChart:                   {Slots: []Slot{req("label"), reqMulti("x")}},
	ButterflyChart:                  {Slots: []Slot{req("label"), req("leftBar"), req("rightBar")}},
	DonutChart:                      {Slots: []Slot{req("label"), req("size")}},
	ScatterPlot:                     {Slots: []Slot{req("x"), req("y"), opt("label"), opt("color"), opt("radius")}},
	CirclePacking:                   {Slots: []Slot{req("label"), opt("size"), opt("color")}},
	TreeMap:                         {Slots: []Slot{req("label"), opt("size"), opt("color")}},
	HeatMap:                         {Slots: []Slot{req("row"), req("column"), opt("value")}},
	RadarChart:                      {Slots: []Slot{req("label"), reqMulti("values")}},
	SparkLine:                       {Slots: []Slot{req("date"), req("y")}},
	SlopeChart:                      {Slots: []Slot{req("label"), req("y1"), req("y2"), opt("color")}},
	StripChart:                      {Slots: []Slot{req("label"), req("position"), opt("color"), opt("size")}},
	BeeSwarmChart:                   {Slots: []Slot{req("label"), req("position"), opt("radius"), opt("color")}},
	ParetoChart:                     {Slots: []Slot{req("label"), req("bar"), req("line")}},
	ChoroplethMap:                   {Slots: []Slot{req("countryCode"), req("x")}},
	BivariateChoroplethMap:          {Slots: []Slot{req("countryCode"), req("x"), req("y")}},
	DotDensityMap:                   {Slots: []Slot{req("lat"), req("long"), opt("label"), opt("color"), opt("radius")}},
	UnitChart:                       {Slots: []Slot{req("label"), req("value")}},
	StatCard:                        {Slots: []Slot{req("value")}},
	WaterfallChart:                  {Slots: []Slot{req("label"), req("size"), opt("color")}},
	SankeyChart:                     {Slots: []Slot{req("source"), req("target"), req("value")}},

	GeoHubMap:                   passThrough,
	GeoHubCompareMap:            passThrough,
	GeoHubMapWithLayerSelection: passThrough,
	DataTable:                   passThrough,
	DataCards:                   passThrough,
}

// Lookup returns the schema of the graph type.
func Lookup(g GraphType) (Schema, bool) {
	s, ok := schemas[g]
	return s, ok
}

// Types returns every known graph type sorted by name.
func Types() []GraphType {
	ret := make([]GraphType, 0, len(schemas))
	for g := range schemas {
		ret = append(ret, g)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
