package posts

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deoxyribo/limeblog/cmd/cli/output"
	"github.com/deoxyribo/limeblog/cmd/cli/root"
	"github.com/deoxyribo/limeblog/internal/store"
)

// ==========================
// CLI Command Init
// ==========================

func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect blog posts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Long:  "List every post in posts.json, newest first.",
		RunE:  runList,
	}

	postsCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(postsCmd)
}

// ==========================
// List Posts
// ==========================

func runList(cmd *cobra.Command, args []string) error {
	posts := store.NewPostStore(afero.NewOsFs(), root.DataDir, root.UploadsDir)

	all, err := posts.List(context.Background())
	if err != nil {
		return err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created > all[j].Created })

	rows := make([][]interface{}, 0, len(all))
	for _, p := range all {
		rows = append(rows, []interface{}{
			p.Slug, p.Title, strings.Join(p.Tags, " "), p.Author, p.Created, p.ReadTime,
		})
	}
	output.RenderTable([]string{"Slug", "Title", "Tags", "Author", "Created", "Min"}, rows)
	return nil
}
