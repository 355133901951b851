package metrics

import "testing"

func TestCyclomaticComplexity(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want uint32
	}{
		{
			name: "no branches",
			src: `const Label = ({ text }) => {
  return <span>{text}</span>;
};`,
			want: 1,
		},
		{
			name: "single if",
			src: `const Gate = ({ open }) => {
  if (open) {
    return <div>open</div>;
  }
  return <div>closed</div>;
};`,
			want: 2,
		},
		{
			name: "doubly nested if",
			src: `const Gadget = ({ a, b }) => {
  if (a) {
    if (b) {
      return <div />;
    }
  }
  return <span />;
};`,
			want: 3,
		},
		{
			name: "else if chain",
			src: `const Status = ({ code }) => {
  if (code === 1) {
    return <em>one</em>;
  } else if (code === 2) {
    return <em>two</em>;
  } else {
    return <em>other</em>;
  }
};`,
			want: 3,
		},
		{
			name: "ternary and logical operators",
			src: `const Mix = ({ a, b, c }) => {
  const label = a ? 'yes' : 'no';
  const both = a && b;
  const either = a || c;
  return <span>{label}</span>;
};`,
			want: 4,
		},
		{
			name: "nullish and optional chaining",
			src: `const Fallback = ({ user }) => {
  const name = user?.profile?.name ?? 'anonymous';
  return <span>{name}</span>;
};`,
			want: 4,
		},
		{
			name: "each optional chain charges exactly once",
			src: `const Avatar = ({ user }) => {
  return <img src={user?.avatarUrl} />;
};`,
			want: 2,
		},
		{
			name: "loops",
			src: `const List = ({ items }) => {
  const out = [];
  for (let i = 0; i < items.length; i++) {
    out.push(items[i]);
  }
  while (out.length > 10) {
    out.pop();
  }
  return <ul>{out}</ul>;
};`,
			want: 3,
		},
		{
			name: "switch cases count but default does not",
			src: `const Badge = ({ kind }) => {
  switch (kind) {
    case 'info':
      return <i />;
    case 'warn':
      return <b />;
    default:
      return <span />;
  }
};`,
			want: 3,
		},
		{
			name: "catch counts",
			src: `const Risky = ({ load }) => {
  try {
    load();
  } catch (err) {
    return <div>failed</div>;
  } finally {
    console.log('done');
  }
  return <div>ok</div>;
};`,
			want: 2,
		},
		{
			name: "jsx conditional charges expression and operator",
			src: `const Toggle = ({ show }) => {
  return <div>{show && <span>on</span>}</div>;
};`,
			want: 3,
		},
		{
			name: "nested function bodies are excluded",
			src: `const Outer = ({ items, onPick }) => {
  const handle = (item) => {
    if (item.ok) {
      onPick(item);
    }
  };
  return <button onClick={handle}>pick</button>;
};`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := componentNameOf(tt.src)
			node, src := boundNode(t, tt.src, name)
			if got := CyclomaticComplexity(node, src); got != tt.want {
				t.Errorf("CyclomaticComplexity = %d, want %d", got, tt.want)
			}
		})
	}
}

// componentNameOf pulls the identifier from "const Name =" test sources.
func componentNameOf(src string) string {
	const prefix = "const "
	start := len(prefix)
	end := start
	for end < len(src) && src[end] != ' ' {
		end++
	}
	return src[start:end]
}

func TestCyclomaticFloor(t *testing.T) {
	node, src := boundNode(t, `const Empty = () => <div />;`, "Empty")
	if got := CyclomaticComplexity(node, src); got < 1 {
		t.Errorf("CyclomaticComplexity = %d, want >= 1", got)
	}
}
