package xkblayouts

import "encoding/xml"

// XkbConfigRegistry is the part of evdev.xml listing layouts and variants.
type XkbConfigRegistry struct {
	XMLName xml.Name `xml:"xkbConfigRegistry"`
	Layouts []Layout `xml:"layoutList>layout"`
}

type ConfigItem struct {
	Name             string `xml:"name"`
	ShortDescription string `xml:"shortDescription"`
	Description      string `xml:"description"`
}

type Layout struct {
	ConfigItem ConfigItem `xml:"configItem"`
	Variants   []Variant  `xml:"variantList>variant"`
}

type Variant struct {
	ConfigItem ConfigItem `xml:"configItem"`
}
