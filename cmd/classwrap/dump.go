package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/internal/listing"
)

var (
	dumpFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <script>",
	Short: "Dump the class registry after emission",
	Long: `Emit a declaration script and dump every class record with its
members, local types, casts and warnings.

Supported formats:
  - text: Human-readable text (default)
  - json: JSON format`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	switch dumpFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}

	p, err := emit(cmd.Context(), args[0], listing.New(nil))
	if err != nil {
		return err
	}
	dump := buildDump(args[0], p)

	if dumpFormat == "json" {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dump)
	}
	dumpText(dump)
	return nil
}

type RegistryDump struct {
	Script      string            `json:"script"`
	Classes     []ClassDump       `json:"classes"`
	Casts       []classmodel.Cast `json:"casts"`
	Wrappers    int               `json:"wrappers"`
	Aliases     int               `json:"aliases"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

type ClassDump struct {
	Name       string          `json:"name"`
	Rename     string          `json:"rename,omitempty"`
	Kind       string          `json:"kind"`
	State      string          `json:"state"`
	Location   string          `json:"location"`
	Abstract   bool            `json:"abstract,omitempty"`
	Imported   bool            `json:"imported,omitempty"`
	Error      bool            `json:"error,omitempty"`
	Bases      []string        `json:"bases,omitempty"`
	LocalTypes []LocalTypeDump `json:"local_types,omitempty"`
	Members    []MemberDump    `json:"members"`
}

type LocalTypeDump struct {
	Name      string `json:"name"`
	Qualified string `json:"qualified"`
}

type MemberDump struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	IName     string `json:"iname,omitempty"`
	Type      string `json:"type,omitempty"`
	Parms     string `json:"parms,omitempty"`
	Value     string `json:"value,omitempty"`
	Static    bool   `json:"static,omitempty"`
	Virtual   string `json:"virtual,omitempty"`
	ReadOnly  bool   `json:"readonly,omitempty"`
	Base      string `json:"base"`
	Inherited bool   `json:"inherited,omitempty"`
}

func buildDump(script string, p *classmodel.Pipeline) *RegistryDump {
	reg := p.Registry()
	dump := &RegistryDump{
		Script:   script,
		Casts:    reg.Casts(),
		Wrappers: reg.Dedup().Len(),
		Aliases:  reg.Dedup().Hits(),
	}
	for _, cls := range reg.All() {
		cd := ClassDump{
			Name:     cls.Name,
			Rename:   cls.Rename,
			Kind:     string(cls.Kind),
			State:    cls.State.String(),
			Location: cls.Loc.String(),
			Abstract: cls.Abstract,
			Imported: cls.ImportMode,
			Error:    cls.Error,
			Bases:    cls.Bases,
			Members:  make([]MemberDump, 0, len(cls.Members)),
		}
		for short, qualified := range cls.Local.All() {
			cd.LocalTypes = append(cd.LocalTypes, LocalTypeDump{Name: short, Qualified: qualified})
		}
		for _, m := range cls.Members {
			cd.Members = append(cd.Members, dumpMember(m))
		}
		dump.Classes = append(dump.Classes, cd)
	}
	for _, d := range p.Diagnostics() {
		dump.Diagnostics = append(dump.Diagnostics, d.String())
	}
	return dump
}

func dumpMember(m classmodel.Member) MemberDump {
	info := m.Info()
	md := MemberDump{
		ID:        info.ID,
		Kind:      m.Kind().String(),
		Name:      info.Name,
		IName:     info.IName,
		Static:    info.Static,
		Base:      info.Base,
		Inherited: info.Inherited,
	}
	if info.Virtual != classmodel.NotVirtual {
		md.Virtual = info.Virtual.String()
	}
	switch m := m.(type) {
	case *classmodel.Function:
		md.Type = m.Type.String()
		md.Parms = m.Parms.ProtoString()
	case *classmodel.Constructor:
		md.Parms = m.Parms.ProtoString()
	case *classmodel.Variable:
		md.Type = m.Type.String()
		md.ReadOnly = m.ReadOnly
	case *classmodel.Constant:
		md.Type = m.Type.String()
		md.Value = m.Value
	}
	return md
}

func dumpText(dump *RegistryDump) {
	fmt.Fprintf(output, "Script: %s\n", dump.Script)
	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Classes ===")
	for _, cd := range dump.Classes {
		kind := cd.Kind
		if kind == "" {
			kind = "placeholder"
		}
		fmt.Fprintf(output, "%s %s (%s, %s)", kind, cd.Name, cd.State, cd.Location)
		if len(cd.Bases) > 0 {
			fmt.Fprintf(output, " : %s", strings.Join(cd.Bases, ", "))
		}
		fmt.Fprintln(output)
		for _, lt := range cd.LocalTypes {
			fmt.Fprintf(output, "  type %s = %s\n", lt.Name, lt.Qualified)
		}
		for _, md := range cd.Members {
			fmt.Fprintf(output, "  %-4d %-11s %s\n", md.ID, md.Kind, memberLine(md))
		}
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Casts ===")
	for _, c := range dump.Casts {
		fmt.Fprintf(output, "%s -> %s\n", c.Derived, c.Base)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Wrappers: %d, aliases: %d\n", dump.Wrappers, dump.Aliases)

	if len(dump.Diagnostics) > 0 {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "=== Warnings ===")
		for _, d := range dump.Diagnostics {
			fmt.Fprintln(output, d)
		}
	}
}

func memberLine(md MemberDump) string {
	var b strings.Builder
	if md.Static {
		b.WriteString("static ")
	}
	if md.Virtual != "" {
		b.WriteString(md.Virtual + " ")
	}
	if md.Type != "" {
		b.WriteString(md.Type + " ")
	}
	b.WriteString(md.Name)
	if md.Kind == classmodel.KindFunction.String() || md.Kind == classmodel.KindConstructor.String() {
		b.WriteString("(" + md.Parms + ")")
	}
	if md.Value != "" {
		b.WriteString(" = " + md.Value)
	}
	if md.IName != "" && md.IName != md.Name {
		b.WriteString(" as " + md.IName)
	}
	if md.ReadOnly {
		b.WriteString(" readonly")
	}
	if md.Inherited {
		b.WriteString(" from " + md.Base)
	}
	return b.String()
}
