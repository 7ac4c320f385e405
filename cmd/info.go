package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/color"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/style"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// infoOutput is what the info command reports for one location.
type infoOutput struct {
	Location   string          `json:"location" jsonschema:"description=Location as given on the command line."`
	Descriptor mrl.Descriptor  `json:"descriptor" jsonschema:"description=Serializable form of the resource, as stored in sessions."`
	Properties *mrl.Properties `json:"properties,omitempty" jsonschema:"description=Stream properties reported by the engine."`
	Metadata   *mrl.Metadata   `json:"metadata,omitempty" jsonschema:"description=Tags reported by the engine."`
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON array")
	infoCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	infoCmd.SetOut(os.Stdout)
}

var infoCmd = &cobra.Command{
	Use:   "info [location...]",
	Short: "Display the properties and tags of media without playing them",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := newPlayer(nil)
		handleErr(err)

		ctx := context.Background()
		outputs, err := inspect(ctx, p, args)
		handleErr(errors.Join(err, p.Close(ctx)))

		var writer io.Writer = cmd.OutOrStdout()
		if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(outputs))
			return
		}

		for i, output := range outputs {
			_, err := fmt.Fprint(writer, output.pretty())
			handleErr(err)
			if i < len(outputs)-1 {
				_, _ = fmt.Fprintln(writer)
			}
		}
	},
}

func inspect(ctx context.Context, p *player.Player, locations []string) ([]infoOutput, error) {
	outputs := make([]infoOutput, 0, len(locations))
	for _, location := range locations {
		m, err := mrl.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}

		output, err := inspectOne(ctx, p, m)
		// m never joined the playlist.
		_ = p.FreeMRL(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
		output.Location = location
		outputs = append(outputs, output)
	}
	return outputs, nil
}

func inspectOne(ctx context.Context, p *player.Player, m *mrl.MRL) (output infoOutput, err error) {
	if output.Descriptor, err = p.MRLDescribe(ctx, m); err != nil {
		return
	}

	output.Properties, err = p.MRLProperties(ctx, m)
	if err != nil && !errors.Is(err, backend.ErrUnsupported) {
		return
	}
	output.Metadata, err = p.MRLMetadata(ctx, m)
	if err != nil && !errors.Is(err, backend.ErrUnsupported) {
		return
	}
	return output, nil
}

func (o infoOutput) pretty() string {
	var sb strings.Builder

	key := style.Fg(color.Purple)
	line := func(name string, value any) {
		sb.WriteString(fmt.Sprintf("  %s %v\n", key(name+":"), value))
	}

	sb.WriteString(style.Bold(o.Location))
	sb.WriteString(" ")
	sb.WriteString(style.Faint(o.Descriptor.Kind.String()))
	sb.WriteString("\n")

	if props := o.Properties; props != nil {
		line("Length", props.Length)
		line("Seekable", props.Seekable)
		if props.Size > 0 {
			line("Size", props.Size)
		}
		if a := props.Audio; a != nil {
			line("Audio", fmt.Sprintf("%s %d Hz %d ch %d bps", a.Codec, a.SampleRate, a.Channels, a.Bitrate))
		}
		if v := props.Video; v != nil {
			line("Video", fmt.Sprintf("%s %dx%d", v.Codec, v.Width, v.Height))
		}
	}

	if meta := o.Metadata; meta != nil {
		for _, field := range []lo.Tuple2[string, string]{
			{A: "Title", B: meta.Title},
			{A: "Artist", B: meta.Artist},
			{A: "Album", B: meta.Album},
			{A: "Genre", B: meta.Genre},
			{A: "Year", B: meta.Year},
			{A: "Track", B: meta.Track},
			{A: "Comment", B: meta.Comment},
		} {
			if field.B != "" {
				line(field.A, style.Fg(color.Yellow)(field.B))
			}
		}
	}

	for _, sub := range o.Descriptor.Subtitles {
		line("Subtitle", sub)
	}

	return sb.String()
}

func init() {
	infoCmd.AddCommand(infoSchemaCmd)
	infoSchemaCmd.SetOut(os.Stdout)
}

var infoSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the info command output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect([]infoOutput{})))
	},
}
