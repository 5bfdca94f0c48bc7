package flow

import "strings"

const DefaultSystemPrompt = "You assist the user in generating a haiku. " +
	"When generating a haiku using the 'generate_haiku' tool, you MUST also select exactly 3 image filenames " +
	"from the following list that are most relevant to the haiku's content or theme. " +
	"Return the filenames in the 'image_names' parameter. " +
	"Dont provide the relavent image names in your final response to the user."

// DefaultImageNames is the image catalog shipped with the haiku UI.
var DefaultImageNames = []string{
	"Osaka_Castle_Turret_Stone_Wall_Pine_Trees_Daytime.jpg",
	"Tokyo_Skyline_Night_Tokyo_Tower_Mount_Fuji_View.jpg",
	"Itsukushima_Shrine_Miyajima_Floating_Torii_Gate_Sunset_Long_Exposure.jpg",
	"Takachiho_Gorge_Waterfall_River_Lush_Greenery_Japan.jpg",
	"Bonsai_Tree_Potted_Japanese_Art_Green_Foliage.jpeg",
	"Shirakawa-go_Gassho-zukuri_Thatched_Roof_Village_Aerial_View.jpg",
	"Ginkaku-ji_Silver_Pavilion_Kyoto_Japanese_Garden_Pond_Reflection.jpg",
	"Senso-ji_Temple_Asakusa_Cherry_Blossoms_Kimono_Umbrella.jpg",
	"Cherry_Blossoms_Sakura_Night_View_City_Lights_Japan.jpg",
	"Mount_Fuji_Lake_Reflection_Cherry_Blossoms_Sakura_Spring.jpg",
}

// buildSystemPrompt appends the image catalog so the model can choose from it.
func buildSystemPrompt(base string, images []string) string {
	base = strings.TrimSpace(base)
	if len(images) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nAvailable images:\n")
	for _, name := range images {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
