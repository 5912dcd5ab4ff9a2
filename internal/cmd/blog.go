package cmd

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/prompter"
	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var (
	blogTitle       string
	blogDescription string
	blogSlug        string
	blogTags        []string
	blogCategory    string
	blogVisibility  string
	blogFeatured    bool
	blogContent     string
	blogCover       string
	blogCoverURL    string
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog commands",
	Long:  "Read, create and edit blogs",
}

var blogViewCmd = &cobra.Command{
	Use:   "view <slug>",
	Short: "Open a blog and record the view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, _, err := service.NewBlogService(rt).View(ctx, args[0])
			return err
		})
	},
}

var blogCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new blog",
	Long: `Publish a new blog. Every field is required, including a cover
image. Content is read from standard input when --content is not set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := draftFromFlags()
		if err != nil {
			return err
		}
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewBlogService(rt).Create(ctx, draft)
			return err
		})
	},
}

var blogEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an existing blog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := draftFromFlags()
		if err != nil {
			return err
		}
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewBlogService(rt).Edit(ctx, args[0], draft)
			return err
		})
	},
}

func draftFromFlags() (api.BlogDraft, error) {
	content := blogContent
	if content == "" {
		text, err := prompter.PromptMultilineString("Content", 10000)
		if err != nil {
			return api.BlogDraft{}, err
		}
		content = strings.TrimSpace(text)
	}
	return api.BlogDraft{
		Title:       blogTitle,
		Description: blogDescription,
		Slug:        blogSlug,
		Tags:        blogTags,
		Category:    blogCategory,
		Visibility:  blogVisibility,
		Featured:    blogFeatured,
		Content:     content,
		CoverPath:   blogCover,
		CoverURL:    blogCoverURL,
	}, nil
}

func init() {
	for _, c := range []*cobra.Command{blogCreateCmd, blogEditCmd} {
		c.Flags().StringVar(&blogTitle, "title", "", "Blog title")
		c.Flags().StringVar(&blogDescription, "description", "", "Short summary")
		c.Flags().StringVar(&blogSlug, "slug", "", "URL slug")
		c.Flags().StringSliceVar(&blogTags, "tags", nil, "Comma-separated tags")
		c.Flags().StringVar(&blogCategory, "category", "", "Category")
		c.Flags().StringVar(&blogVisibility, "visibility", "public", "public or private")
		c.Flags().BoolVar(&blogFeatured, "featured", false, "Feature on the home page")
		c.Flags().StringVar(&blogContent, "content", "", "Blog body (markdown)")
		c.Flags().StringVar(&blogCover, "cover", "", "Path to a cover image")
		c.Flags().StringVar(&blogCoverURL, "cover-url", "", "Keep an existing cover image URL")
	}

	blogCmd.AddCommand(blogViewCmd)
	blogCmd.AddCommand(blogCreateCmd)
	blogCmd.AddCommand(blogEditCmd)
}
